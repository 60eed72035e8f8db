package ticket

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// UpdateCmd returns the ticket update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a ticket",
		Long: `Update a ticket's title, content or status. Fields that are not given keep
their current value. Changing the status moves the ticket to the end of the
new column.`,
		Args: cli.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("content", "", "New content")
	cmd.Flags().String("status", "", "New column: to-do, to-test, done")

	cli.AddOutputFlags(cmd, true)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	title := cli.OptionalString(cmd, "title")
	content := cli.OptionalString(cmd, "content")
	statusFlag := cli.OptionalString(cmd, "status")
	if title == nil && content == nil && statusFlag == nil {
		return formatter.FailWithSuggestion(cli.UsageError(errors.New("no fields to update")),
			"Pass at least one of --title, --content, --status")
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

	current, err := cliInstance.App.TicketService.GetTicket(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	req := ticketservice.UpdateTicketRequest{
		ID:      current.ID,
		Title:   current.Title,
		Content: current.Content,
		Status:  current.Status,
	}
	if title != nil {
		req.Title = *title
	}
	if content != nil {
		req.Content = *content
	}
	if statusFlag != nil {
		if req.Status, err = cli.ParseStatus(*statusFlag); err != nil {
			return formatter.Fail(err)
		}
	}

	updated, err := cliInstance.App.TicketService.UpdateTicket(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(updated)
	}

	fmt.Printf("%s Updated ticket %s\n", styles.SuccessStyle.Render("✓"), updated.ID)
	if updated.Status != current.Status {
		fmt.Printf("  moved %s → %s\n", styles.RenderStatus(current.Status), styles.RenderStatus(updated.Status))
	}
	return nil
}
