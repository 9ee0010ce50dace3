package commands

import (
	"fmt"
	"strconv"

	"boardsync/internal/api"
	"boardsync/internal/dragdrop"
	"boardsync/internal/reconciler"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newListsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Create and reorder lists",
	}

	create := &cobra.Command{
		Use:   "create <boardId> <title>",
		Short: "Append a list to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(cmd, "board", args[0])
			if err != nil {
				return err
			}
			client, err := e.client(cmd)
			if err != nil {
				return err
			}
			list, err := client.CreateList(cmd.Context(), boardID, args[1])
			if err != nil {
				return err
			}
			success(cmd, "Created list %s at position %d", list.ID, list.Position)
			return nil
		},
	}

	move := &cobra.Command{
		Use:   "move <boardId> <listId> <index>",
		Short: "Move a list to a new position on its board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(cmd, "board", args[0])
			if err != nil {
				return err
			}
			listID, err := parseID(cmd, "list", args[1])
			if err != nil {
				return err
			}
			index, err := parseIndex(cmd, args[2])
			if err != nil {
				return err
			}
			client, err := e.client(cmd)
			if err != nil {
				return err
			}

			board := reconciler.New(client, boardID)
			snap, err := board.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			from := listIndex(snap, listID)
			if from < 0 {
				return printError(cmd, "list not found",
					fmt.Sprintf("List %s is not on board %s.", listID, boardID), nil)
			}

			adapter := dragdrop.NewAdapter(client, board, nil, nil)
			sent, err := adapter.HandleDrop(cmd.Context(), snap, dragdrop.DropResult{
				Kind:        dragdrop.KindList,
				DraggableID: listID,
				Source:      dragdrop.Location{Index: from},
				Destination: &dragdrop.Location{Index: index},
			})
			if err != nil {
				return err
			}
			if !sent {
				faint.Fprintln(cmd.OutOrStdout(), "List already at that position.")
				return nil
			}
			success(cmd, "Moved list")
			renderBoard(cmd.OutOrStdout(), board.Snapshot())
			return nil
		},
	}

	cmd.AddCommand(create, move)
	return cmd
}

func listIndex(snap *api.BoardSnapshot, listID uuid.UUID) int {
	for i, l := range snap.Lists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}

func parseIndex(cmd *cobra.Command, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, printError(cmd, "invalid position", fmt.Sprintf("%q is not a non-negative integer.", raw), nil)
	}
	return n, nil
}
