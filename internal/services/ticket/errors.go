package ticket

import (
	"errors"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// Ticket-related errors
var (
	// ErrValidation wraps every rejected request; check with errors.Is
	ErrValidation = errors.New("validation failed")

	// Field errors, reported inside criterio.FieldErrors
	ErrEmptyTitle      = errors.New("ticket title cannot be empty")
	ErrTitleLength     = errors.New("ticket title length out of range")
	ErrEmptyContent    = errors.New("ticket content cannot be empty")
	ErrInvalidStatus   = errors.New("invalid status (must be: to-do, to-test, done)")
	ErrInvalidTicketID = errors.New("ticket ID cannot be empty")

	// Move request errors
	ErrAmbiguousAnchor      = errors.New("only one of after and before may be given")
	ErrAnchorColumnMismatch = errors.New("anchor ticket is not in the target column")

	// Import errors
	ErrBoardNotEmpty = errors.New("board must be empty before import")
)

// Store errors re-exported so callers only need this package
var (
	ErrTicketNotFound     = models.ErrTicketNotFound
	ErrInvariantViolation = models.ErrInvariantViolation
)
