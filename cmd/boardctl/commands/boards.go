package commands

import (
	"fmt"

	"boardsync/internal/api"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newBoardsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List boards you own or belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := e.client(cmd)
			if err != nil {
				return err
			}
			boards, err := client.Boards(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(boards) == 0 {
				faint.Fprintln(w, "No boards yet. Create one with: boardctl board create <title>")
				return nil
			}
			for _, b := range boards {
				fmt.Fprintf(w, "%s  %s\n", b.ID, b.Title)
			}
			return nil
		},
	}
}

func newBoardCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create or inspect a single board",
	}

	var req api.CreateBoardRequest
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := e.client(cmd)
			if err != nil {
				return err
			}
			req.Title = args[0]
			board, err := client.CreateBoard(cmd.Context(), req)
			if err != nil {
				return err
			}
			success(cmd, "Created board %s", board.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&req.Description, "description", "d", "", "board description")
	create.Flags().StringVar(&req.Color, "color", "", "board color")

	show := &cobra.Command{
		Use:   "show <boardId>",
		Short: "Print a board with its lists and cards in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(cmd, "board", args[0])
			if err != nil {
				return err
			}
			client, err := e.client(cmd)
			if err != nil {
				return err
			}
			snap, err := client.Board(cmd.Context(), boardID)
			if err != nil {
				return err
			}
			renderBoard(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.AddCommand(create, show)
	return cmd
}

func parseID(cmd *cobra.Command, what, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, printError(cmd, "invalid "+what+" id", fmt.Sprintf("%q is not a UUID.", raw), nil)
	}
	return id, nil
}
