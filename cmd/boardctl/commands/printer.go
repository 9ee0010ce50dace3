package commands

import (
	"fmt"
	"io"
	"strings"

	"boardsync/internal/api"
	"boardsync/internal/realtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

func success(cmd *cobra.Command, format string, a ...any) {
	green.Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", a...)
}

// printError writes a titled error with suggestions to stderr and returns a
// short error for cobra.
func printError(cmd *cobra.Command, title, explanation string, suggestions []string) error {
	w := cmd.ErrOrStderr()
	red.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "%s\n", explanation)
	if len(suggestions) > 0 {
		fmt.Fprintln(w)
		for _, s := range suggestions {
			fmt.Fprintf(w, "%s\n", s)
		}
	}
	return fmt.Errorf("%s", title)
}

// renderBoard prints lists in board order, each with its cards in list order.
func renderBoard(w io.Writer, snap *api.BoardSnapshot) {
	cyan.Fprintf(w, "%s", snap.Title)
	faint.Fprintf(w, "  %s\n", snap.ID)
	if len(snap.Lists) == 0 {
		faint.Fprintln(w, "  (no lists)")
	}
	for _, l := range snap.Lists {
		fmt.Fprintf(w, "  [%d] %s", l.Position, l.Title)
		faint.Fprintf(w, "  %s\n", l.ID)
		for _, c := range l.Cards {
			fmt.Fprintf(w, "      %d. %s", c.Position, c.Title)
			if len(c.Labels) > 0 {
				yellow.Fprintf(w, " [%s]", strings.Join(c.Labels, ", "))
			}
			faint.Fprintf(w, "  %s\n", c.ID)
		}
	}
}

func renderEvent(w io.Writer, ev realtime.Event) {
	name := ev.EventName()
	switch {
	case strings.HasSuffix(name, ":deleted"), name == "user:left":
		red.Fprintf(w, "• %s\n", name)
	case strings.HasSuffix(name, ":created"), name == "user:joined":
		green.Fprintf(w, "• %s\n", name)
	default:
		yellow.Fprintf(w, "• %s\n", name)
	}
}
