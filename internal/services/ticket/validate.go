package ticket

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// Limits bounds the accepted ticket title length, in runes
type Limits struct {
	TitleMin int
	TitleMax int
}

// DefaultLimits returns the stock 3..15 title bounds
func DefaultLimits() Limits {
	return Limits{TitleMin: models.DefaultTitleMinLength, TitleMax: models.DefaultTitleMaxLength}
}

func (l Limits) title(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	n := utf8.RuneCountInString(title)
	if n < l.TitleMin || n > l.TitleMax {
		return fmt.Errorf("%w: must be %d-%d characters, got %d", ErrTitleLength, l.TitleMin, l.TitleMax, n)
	}
	return nil
}

func content(c string) error {
	if strings.TrimSpace(c) == "" {
		return ErrEmptyContent
	}
	return nil
}

func status(s string) error {
	if !models.Status(s).Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
	}
	return nil
}

func ticketID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidTicketID
	}
	return nil
}

// validationError tags criterio field errors with ErrValidation so callers
// can use errors.Is while errors.As(&criterio.FieldErrors) keeps working.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func (s *service) validateCreate(req CreateTicketRequest) error {
	return validationError(criterio.ValidateStruct(
		criterio.Run("title", req.Title, s.limits.title),
		criterio.Run("content", req.Content, content),
		criterio.Run("status", string(req.Status), status),
	))
}

func (s *service) validateUpdate(req UpdateTicketRequest) error {
	return validationError(criterio.ValidateStruct(
		criterio.Run("id", req.ID, ticketID),
		criterio.Run("title", req.Title, s.limits.title),
		criterio.Run("content", req.Content, content),
		criterio.Run("status", string(req.Status), status),
	))
}

func validateMove(req MoveTicketRequest) error {
	if req.AfterID != nil && req.BeforeID != nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrAmbiguousAnchor)
	}

	var errs criterio.FieldErrorsBuilder
	if err := ticketID(req.TicketID); err != nil {
		errs = errs.Append("ticket_id", err)
	}
	if req.AfterID != nil {
		if err := ticketID(*req.AfterID); err != nil {
			errs = errs.Append("after_id", err)
		}
	}
	if req.BeforeID != nil {
		if err := ticketID(*req.BeforeID); err != nil {
			errs = errs.Append("before_id", err)
		}
	}
	if req.ToStatus != "" {
		if err := status(string(req.ToStatus)); err != nil {
			errs = errs.Append("to_status", err)
		}
	}
	return validationError(errs.ToError())
}
