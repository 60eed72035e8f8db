package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/models"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// ParseStatus converts a --status value, reporting bad input as a
// validation error
func ParseStatus(s string) (models.Status, error) {
	status, err := models.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ticketservice.ErrValidation, err)
	}
	return status, nil
}

// OptionalString returns a pointer to the flag's value when the flag was set
// on the command line, nil otherwise
func OptionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// Formatter builds an OutputFormatter from the --json and --quiet flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// AddOutputFlags registers --json and, if quiet is true, --quiet
func AddOutputFlags(cmd *cobra.Command, quiet bool) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	if quiet {
		cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
	}
}

// Confirm prints prompt and reads a yes/no answer from in. Anything but
// y or yes is a no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N): ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// ExactArgs is cobra.ExactArgs reporting a usage error
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return UsageError(err)
		}
		return nil
	}
}

// NoArgs is cobra.NoArgs reporting a usage error
func NoArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return UsageError(err)
	}
	return nil
}
