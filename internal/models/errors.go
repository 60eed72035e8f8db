package models

import (
	"errors"
	"fmt"
)

// Domain-specific errors shared by the store and the services
var (
	// ErrTicketNotFound indicates that a referenced ticket does not exist
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrInvariantViolation indicates that a column's chain is corrupted
	ErrInvariantViolation = errors.New("board invariant violated")
)

// ChainError describes a broken column chain.
// It matches ErrInvariantViolation with errors.Is.
type ChainError struct {
	Status   Status
	TicketID string
	Reason   string
}

func (e *ChainError) Error() string {
	if e.TicketID != "" {
		return fmt.Sprintf("%s: column %s, ticket %s: %s", ErrInvariantViolation, e.Status, e.TicketID, e.Reason)
	}
	return fmt.Sprintf("%s: column %s: %s", ErrInvariantViolation, e.Status, e.Reason)
}

func (e *ChainError) Unwrap() error {
	return ErrInvariantViolation
}

// NewChainError builds a ChainError
func NewChainError(status Status, ticketID, reason string) *ChainError {
	return &ChainError{Status: status, TicketID: ticketID, Reason: reason}
}
