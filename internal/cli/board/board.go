// Package board implements the whole-board commands: view, check, export
// and import.
package board

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
)

// BoardCmd returns the board command. Run on its own it prints the board.
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board",
		Long:  "Show every column side by side, each in its stored order.",
		Args: cli.NoArgs,
		RunE:  runView,
	}

	cli.AddOutputFlags(cmd, false)

	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(ExportCmd())
	cmd.AddCommand(ImportCmd())

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
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

	columns, err := cliInstance.App.TicketService.ListByColumn(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(columns)
	}

	fmt.Println(styles.RenderBoard(columns))
	return nil
}
