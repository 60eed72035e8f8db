package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/board"
	"github.com/thenoetrevino/ticketboard/internal/cli/ticket"
	"github.com/thenoetrevino/ticketboard/internal/cli/watch"
	"github.com/thenoetrevino/ticketboard/internal/launcher"
)

// NewRootCmd builds the ticketboard command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ticketboard",
		Short: "ticketboard - an ordered kanban board for the terminal",
		Long: `ticketboard keeps tickets in three columns (to-do, to-test, done), each in an
order you control. Tickets can be created, reordered, moved between columns,
searched and deleted; the whole board can be checked, exported and imported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.UsageError(err)
	})

	rootCmd.AddCommand(ticket.TicketCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(watch.WatchCmd())
	rootCmd.AddCommand(tuiCmd())

	return rootCmd
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Long: `Open the board in full screen. Tickets can be created, reordered, moved
between columns, searched and deleted from the keyboard; press ? for the keys.
Changes made elsewhere show up live when the daemon is running.`,
		Args: cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher.Launch(cmd.Context())
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
