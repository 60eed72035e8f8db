package ticket

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// ListCmd returns the ticket list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets in board order",
		Long: `List tickets column by column (to-do, to-test, done), each column in its
stored order. --status restricts the listing to one column.`,
		Args: cli.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("status", "", "Only list this column")

	cli.AddOutputFlags(cmd, true)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	statuses := models.Statuses
	if s := cli.OptionalString(cmd, "status"); s != nil {
		status, err := cli.ParseStatus(*s)
		if err != nil {
			return formatter.Fail(err)
		}
		statuses = []models.Status{status}
	}

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

	var columns map[models.Status][]*models.Ticket
	if len(statuses) == 1 {
		column, err := cliInstance.App.TicketService.ListColumn(ctx, statuses[0])
		if err != nil {
			return formatter.Fail(err)
		}
		columns = map[models.Status][]*models.Ticket{statuses[0]: column}
	} else if columns, err = cliInstance.App.TicketService.ListByColumn(ctx); err != nil {
		return formatter.Fail(err)
	}

	ordered := make([]*models.Ticket, 0)
	for _, st := range statuses {
		ordered = append(ordered, columns[st]...)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(ordered)
	}

	for i, st := range statuses {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s %s\n", styles.RenderStatus(st), styles.SubtitleStyle.Render(fmt.Sprintf("(%d)", len(columns[st]))))
		if len(columns[st]) == 0 {
			fmt.Println(styles.SubtitleStyle.Render("  no tickets"))
			continue
		}
		for pos, t := range columns[st] {
			fmt.Printf("%s  %s\n", styles.RenderTicketLine(pos+1, t),
				styles.SubtitleStyle.Render(humanize.Time(t.UpdatedAt)))
		}
	}
	return nil
}
