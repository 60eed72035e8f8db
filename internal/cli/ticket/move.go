package ticket

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/models"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// moveResult is the JSON payload of a move
type moveResult struct {
	Ticket   *models.Ticket `json:"ticket"`
	Position int            `json:"position"` // 1-based, within the ticket's column
	Total    int            `json:"total"`
}

func (r *moveResult) GetID() string {
	return r.Ticket.ID
}

// MoveCmd returns the ticket move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Reorder a ticket or move it to another column",
		Long: `Place a ticket directly after or before another ticket, or at the end of a
column. Without --after or --before the ticket goes to the end of --to (or of
its own column). With an anchor, --to defaults to the anchor's column and
must match it when given.

Examples:
  ticketboard ticket move 3f2c --to done
  ticketboard ticket move 3f2c --after 9a1e
  ticketboard ticket move 3f2c --before 9a1e --to to-test`,
		Args: cli.ExactArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("after", "", "Place directly after this ticket")
	cmd.Flags().String("before", "", "Place directly before this ticket")
	cmd.Flags().String("to", "", "Target column: to-do, to-test, done")

	cli.AddOutputFlags(cmd, true)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	req := ticketservice.MoveTicketRequest{
		TicketID: args[0],
		AfterID:  cli.OptionalString(cmd, "after"),
		BeforeID: cli.OptionalString(cmd, "before"),
	}
	if to := cli.OptionalString(cmd, "to"); to != nil {
		status, err := cli.ParseStatus(*to)
		if err != nil {
			return formatter.Fail(err)
		}
		req.ToStatus = status
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

	moved, err := cliInstance.App.TicketService.MoveTicket(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	column, err := cliInstance.App.TicketService.ListColumn(ctx, moved.Status)
	if err != nil {
		return formatter.Fail(err)
	}
	result := &moveResult{Ticket: moved, Total: len(column)}
	for i, t := range column {
		if t.ID == moved.ID {
			result.Position = i + 1
			break
		}
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(result)
	}

	fmt.Printf("%s Moved ticket %s to %s (position %d of %d)\n",
		styles.SuccessStyle.Render("✓"), moved.ID, styles.RenderStatus(moved.Status),
		result.Position, result.Total)
	return nil
}
