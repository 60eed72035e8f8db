package board

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/snapshot"
)

// ExportCmd returns the board export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board",
		Long: `Write every column, in order, as JSON, YAML or CBOR. Without --output the
snapshot goes to stdout. With --output and no --format the format follows the
file extension.`,
		Args: cli.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().String("format", "", "Snapshot format: json, yaml, cbor")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := &cli.OutputFormatter{}
	output, _ := cmd.Flags().GetString("output")

	format, err := resolveFormat(cmd, output)
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

	board, err := cliInstance.App.TicketService.ExportBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return formatter.Fail(err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := snapshot.Encode(w, board, format); err != nil {
		return formatter.Fail(err)
	}

	if output != "" {
		fmt.Printf("%s Exported %d tickets to %s\n", styles.SuccessStyle.Render("✓"), board.Count(), output)
	}
	return nil
}

// resolveFormat picks the snapshot format from --format, then from the
// file extension
func resolveFormat(cmd *cobra.Command, path string) (snapshot.Format, error) {
	if flag := cli.OptionalString(cmd, "format"); flag != nil {
		format, err := snapshot.ParseFormat(*flag)
		if err != nil {
			return "", cli.UsageError(err)
		}
		return format, nil
	}
	if path == "" || path == "-" {
		return snapshot.FormatJSON, nil
	}
	return snapshot.FormatFromPath(path), nil
}
