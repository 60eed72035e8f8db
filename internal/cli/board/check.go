package board

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// CheckCmd returns the board check subcommand
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every column's ticket chain",
		Long: `Walk every column and report ticket counts, broken links and a digest of
the ordered board. Exits with status 4 when any column is corrupted.`,
		Args: cli.NoArgs,
		RunE: runCheck,
	}

	cli.AddOutputFlags(cmd, false)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	report, err := cliInstance.App.TicketService.CheckBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if !report.Healthy {
		return &cli.ExitError{
			Code:     cli.ExitDataErr,
			Err:      fmt.Errorf("%w: %d column(s) corrupted", models.ErrInvariantViolation, len(report.Issues)),
			Reported: true,
		}
	}
	return nil
}

func printReport(report *models.BoardReport) {
	for _, c := range report.Columns {
		fmt.Printf("%-10s %d\n", styles.RenderStatus(c.Status), c.Count)
	}
	fmt.Printf("%-10s %d\n", "total", report.Total)

	if report.Healthy {
		fmt.Printf("\n%s board is consistent\n", styles.SuccessStyle.Render("✓"))
		fmt.Printf("%s %s\n", styles.LabelStyle.Render("digest:"), styles.SubtitleStyle.Render(report.Digest))
		return
	}

	fmt.Printf("\n%s board is corrupted\n", styles.ErrorStyle.Render("✗"))
	for _, issue := range report.Issues {
		fmt.Printf("  - %s\n", issue)
	}
}
