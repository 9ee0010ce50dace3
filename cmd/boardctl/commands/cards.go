package commands

import (
	"fmt"

	"boardsync/internal/api"
	"boardsync/internal/dragdrop"
	"boardsync/internal/reconciler"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCardsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Create and move cards",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <listId> <title>",
		Short: "Append a card to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(cmd, "list", args[0])
			if err != nil {
				return err
			}
			client, err := e.client(cmd)
			if err != nil {
				return err
			}
			card, err := client.CreateCard(cmd.Context(), api.CreateCardRequest{
				Title:       args[1],
				Description: description,
				ListID:      listID,
			})
			if err != nil {
				return err
			}
			success(cmd, "Created card %s at position %d", card.ID, card.Position)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "card description")

	var toList string
	move := &cobra.Command{
		Use:   "move <boardId> <cardId> <index>",
		Short: "Move a card within its list or to another list (--to)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(cmd, "board", args[0])
			if err != nil {
				return err
			}
			cardID, err := parseID(cmd, "card", args[1])
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
			src, ok := cardLocation(snap, cardID)
			if !ok {
				return printError(cmd, "card not found",
					fmt.Sprintf("Card %s is not on board %s.", cardID, boardID), nil)
			}
			dst := dragdrop.Location{ListID: src.ListID, Index: index}
			if toList != "" {
				if dst.ListID, err = parseID(cmd, "list", toList); err != nil {
					return err
				}
			}

			adapter := dragdrop.NewAdapter(client, board, nil, nil)
			sent, err := adapter.HandleDrop(cmd.Context(), snap, dragdrop.DropResult{
				Kind:        dragdrop.KindCard,
				DraggableID: cardID,
				Source:      src,
				Destination: &dst,
			})
			if err != nil {
				return err
			}
			if !sent {
				faint.Fprintln(cmd.OutOrStdout(), "Card already at that position.")
				return nil
			}
			success(cmd, "Moved card")
			renderBoard(cmd.OutOrStdout(), board.Snapshot())
			return nil
		},
	}
	move.Flags().StringVar(&toList, "to", "", "destination list id (default: the card's current list)")

	cmd.AddCommand(create, move)
	return cmd
}

func cardLocation(snap *api.BoardSnapshot, cardID uuid.UUID) (dragdrop.Location, bool) {
	for _, l := range snap.Lists {
		for i, c := range l.Cards {
			if c.ID == cardID {
				return dragdrop.Location{ListID: l.ID, Index: i}, true
			}
		}
	}
	return dragdrop.Location{}, false
}
