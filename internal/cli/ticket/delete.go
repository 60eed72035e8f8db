package ticket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
)

// DeleteCmd returns the ticket delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Long:  "Delete a ticket by ID (requires confirmation unless --force or --quiet).",
		Args:  cli.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOutputFlags(cmd, true)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

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

	ticket, err := cliInstance.App.TicketService.GetTicket(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	// Ask for confirmation unless force, quiet or JSON mode
	if !force && !formatter.Quiet && !formatter.JSON {
		prompt := fmt.Sprintf("Delete ticket %s: '%s'?", ticket.ID, ticket.Title)
		if !cli.Confirm(cmd.InOrStdin(), os.Stdout, prompt) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.TicketService.DeleteTicket(ctx, ticket.ID); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"ticket_id": ticket.ID,
		})
	}

	fmt.Printf("%s Ticket %s deleted\n", styles.SuccessStyle.Render("✓"), ticket.ID)
	return nil
}
