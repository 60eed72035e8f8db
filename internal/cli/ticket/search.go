package ticket

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
)

// SearchCmd returns the ticket search subcommand
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search tickets by title",
		Long:  "Find tickets whose title contains the given text, ignoring case.",
		Args:  cli.ExactArgs(1),
		RunE:  runSearch,
	}

	cli.AddOutputFlags(cmd, true)
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	tickets, err := cliInstance.App.TicketService.SearchByTitle(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(tickets)
	}

	if len(tickets) == 0 {
		fmt.Printf("No tickets match %q\n", args[0])
		return nil
	}
	for i, t := range tickets {
		fmt.Printf("%s  %s\n", styles.RenderTicketLine(i+1, t), styles.RenderStatus(t.Status))
	}
	return nil
}
