package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"boardsync/internal/api"
	"boardsync/internal/realtime"
	"boardsync/internal/reconciler"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(e *env) *cobra.Command {
	var (
		duration time.Duration
		debounce time.Duration
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "watch <boardId>",
		Short: "Follow a board live, reprinting it after every change",
		Long: `watch joins the board's realtime group and refetches the board after
each burst of events. It reconnects on its own and resyncs after every
reconnect. Press Ctrl-C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(cmd, "board", args[0])
			if err != nil {
				return err
			}
			client, err := e.client(cmd)
			if err != nil {
				return err
			}
			wsURL, err := client.WebsocketURL()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			var mu sync.Mutex
			w := cmd.OutOrStdout()
			board := reconciler.New(client, boardID,
				reconciler.WithDebounce(debounce),
				reconciler.WithLogger(log),
				reconciler.WithOnSnapshot(func(snap *api.BoardSnapshot) {
					mu.Lock()
					defer mu.Unlock()
					faint.Fprintf(w, "--- %s\n", time.Now().Format(time.TimeOnly))
					renderBoard(w, snap)
				}),
			)
			sub := reconciler.NewSubscriber(wsURL, boardID, board,
				reconciler.WithSubscriberLogger(log),
				reconciler.WithEventHandler(func(ev realtime.Event) {
					mu.Lock()
					defer mu.Unlock()
					renderEvent(w, ev)
				}),
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return board.Run(gctx) })
			g.Go(func() error { return sub.Run(gctx) })

			err = g.Wait()
			switch {
			case errors.Is(err, reconciler.ErrJoinRefused):
				return printError(cmd, "cannot watch board",
					fmt.Sprintf("The server refused to join board %s.", boardID),
					[]string{"Check that you are a member of the board:\n  boardctl boards"})
			case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil
			default:
				return err
			}
		},
	}
	cmd.Flags().DurationVar(&duration, "for", 0, "stop after this long (default: until interrupted)")
	cmd.Flags().DurationVar(&debounce, "debounce", reconciler.DefaultDebounce, "quiet period before refetching")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log connection details")
	return cmd
}
