package board

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/snapshot"
)

// ImportCmd returns the board import subcommand
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an exported board",
		Long: `Restore a board written by 'board export' into an empty database, keeping
ticket IDs and column order. Use - to read from stdin.`,
		Args: cli.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("format", "", "Snapshot format: json, yaml, cbor")
	cli.AddOutputFlags(cmd, false)
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	path := args[0]

	format, err := resolveFormat(cmd, path)
	if err != nil {
		return formatter.Fail(err)
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return formatter.Fail(err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	board, err := snapshot.Decode(r, format)
	if err != nil {
		return formatter.Fail(&cli.ExitError{Code: cli.ExitDataErr, Err: err})
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

	imported, err := cliInstance.App.TicketService.ImportBoard(ctx, board)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"imported": imported,
		})
	}

	fmt.Printf("%s Imported %d tickets\n", styles.SuccessStyle.Render("✓"), imported)
	return nil
}
