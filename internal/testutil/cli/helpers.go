package cli

import (
	"errors"
	"testing"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/testutil"
)

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	return testutil.ParseJSON(t, output)
}

// ExitCode returns the exit code the command error maps to, failing the
// test when err is not an *cli.ExitError
func ExitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *cli.ExitError, got %T: %v", err, err)
	}
	return exitErr.Code
}
