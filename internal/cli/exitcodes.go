package cli

import (
	"errors"
	"fmt"

	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, daemon errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a referenced ticket does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or corrupted data.
	// Use for: Broken column chains, unreadable snapshots, importing into a
	// board that already has tickets.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Title length, empty content, unknown status, conflicting
	// move anchors.
	ExitValidation = 5
)

// ExitError carries the process exit code for a failed command. The message
// has already been shown to the user when Reported is set.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// UsageError marks err as a usage problem (exit code 2)
func UsageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// Classify maps an error to the machine readable code used in JSON output
// and the process exit code.
func Classify(err error) (code string, exit int) {
	var exitErr *ExitError
	switch {
	case err == nil:
		return "", ExitSuccess
	case errors.Is(err, ticketservice.ErrTicketNotFound):
		return "TICKET_NOT_FOUND", ExitNotFound
	case errors.Is(err, ticketservice.ErrValidation):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, ticketservice.ErrInvariantViolation):
		return "INVARIANT_VIOLATION", ExitDataErr
	case errors.Is(err, ticketservice.ErrBoardNotEmpty):
		return "BOARD_NOT_EMPTY", ExitDataErr
	case errors.As(err, &exitErr):
		switch exitErr.Code {
		case ExitUsage:
			return "USAGE_ERROR", ExitUsage
		case ExitDataErr:
			return "DATA_ERROR", ExitDataErr
		}
		return "ERROR", exitErr.Code
	default:
		return "ERROR", ExitError
	}
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	_, code := Classify(err)
	return code
}
