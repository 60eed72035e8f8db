package database

import (
	"context"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// TicketReader defines read operations for tickets.
type TicketReader interface {
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	ListColumn(ctx context.Context, status models.Status) ([]*models.Ticket, error)
	ListAllOrdered(ctx context.Context) ([]*models.Ticket, error)
	SearchByTitle(ctx context.Context, substring string) ([]*models.Ticket, error)
	CountByStatus(ctx context.Context) (map[models.Status]int, error)
}

// ChainReader defines the neighbour lookups used when rewriting links.
type ChainReader interface {
	FindPredecessor(ctx context.Context, id string) (*models.Ticket, error)
	FindColumnHead(ctx context.Context, status models.Status) (*models.Ticket, error)
	FindColumnTail(ctx context.Context, status models.Status) (*models.Ticket, error)
}

// TicketWriter defines write operations for tickets.
type TicketWriter interface {
	InsertTicket(ctx context.Context, t *models.Ticket) error
	UpdateTicketFields(ctx context.Context, t *models.Ticket) error
	SaveLinks(ctx context.Context, tickets ...*models.Ticket) error
	DeleteTicket(ctx context.Context, id string) error
}

// TicketRepository combines all ticket-related operations.
type TicketRepository interface {
	TicketReader
	ChainReader
	TicketWriter
}

// Compile-time verification that *TicketRepo implements TicketRepository
var _ TicketRepository = (*TicketRepo)(nil)
