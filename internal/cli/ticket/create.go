package ticket

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// CreateCmd returns the ticket create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new ticket",
		Long: `Create a new ticket at the end of a column.

Examples:
  ticketboard ticket create --title "Fix login" --content "SSO redirect loops"
  ticketboard ticket create --title "Release" --content "Tag v1" --status to-test --quiet`,
		Args: cli.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Ticket title (required)")
	cmd.Flags().String("content", "", "Ticket content, markdown (required)")
	cmd.Flags().String("status", "to-do", "Column: to-do, to-test, done")

	cli.AddOutputFlags(cmd, true)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	statusFlag, _ := cmd.Flags().GetString("status")

	status, err := cli.ParseStatus(statusFlag)
	if err != nil {
		return formatter.Fail(err)
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

	ticket, err := cliInstance.App.TicketService.CreateTicket(ctx, ticketservice.CreateTicketRequest{
		Title:   title,
		Content: content,
		Status:  status,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(ticket)
	}

	fmt.Printf("%s Created ticket %s in %s\n",
		styles.SuccessStyle.Render("✓"), ticket.ID, styles.RenderStatus(ticket.Status))
	fmt.Printf("  %s\n", styles.TitleStyle.Render(ticket.Title))
	return nil
}
