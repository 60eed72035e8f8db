package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/ticketboard/internal/database"
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/models"
	"github.com/thenoetrevino/ticketboard/internal/snapshot"
)

// Service defines all ticket-related business operations
type Service interface {
	// Read operations
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	ListAll(ctx context.Context) ([]*models.Ticket, error)
	ListColumn(ctx context.Context, status models.Status) ([]*models.Ticket, error)
	ListByColumn(ctx context.Context) (map[models.Status][]*models.Ticket, error)
	SearchByTitle(ctx context.Context, substring string) ([]*models.Ticket, error)

	// Write operations
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, req UpdateTicketRequest) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error

	// Ordering
	MoveTicket(ctx context.Context, req MoveTicketRequest) (*models.Ticket, error)

	// Whole-board operations
	CheckBoard(ctx context.Context) (*models.BoardReport, error)
	ExportBoard(ctx context.Context) (*snapshot.Board, error)
	ImportBoard(ctx context.Context, board *snapshot.Board) (int, error)
}

// CreateTicketRequest encapsulates all data needed to create a ticket.
// The ticket is appended to the end of its column.
type CreateTicketRequest struct {
	Title   string
	Content string
	Status  models.Status
}

// UpdateTicketRequest overwrites every editable field of a ticket.
// Changing Status moves the ticket to the end of the new column.
type UpdateTicketRequest struct {
	ID      string
	Title   string
	Content string
	Status  models.Status
}

// MoveTicketRequest repositions a ticket. At most one of AfterID and BeforeID
// may be set; with neither the ticket goes to the end of ToStatus.
// An empty ToStatus means the anchor's column, or the ticket's own column
// when there is no anchor.
type MoveTicketRequest struct {
	TicketID string
	AfterID  *string
	BeforeID *string
	ToStatus models.Status
}

// Option configures the service
type Option func(*service)

// WithLimits overrides the title length bounds
func WithLimits(l Limits) Option {
	return func(s *service) {
		if l.TitleMin > 0 && l.TitleMax >= l.TitleMin {
			s.limits = l
		}
	}
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
	limits      Limits
}

// NewService creates a new ticket service
func NewService(repo database.DataStore, eventClient events.EventPublisher, opts ...Option) Service {
	s := &service{
		repo:        repo,
		eventClient: eventClient,
		limits:      DefaultLimits(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// READS
// ============================================================================

// GetTicket retrieves one ticket
func (s *service) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	if err := ticketID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.repo.GetTicket(ctx, id)
}

// ListAll returns every ticket in board order: to-do, to-test, done,
// each column in chain order. The board is read in one transaction.
func (s *service) ListAll(ctx context.Context) ([]*models.Ticket, error) {
	var all []*models.Ticket
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		var err error
		all, err = tx.ListAllOrdered(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return all, nil
}

// ListColumn returns one column in chain order
func (s *service) ListColumn(ctx context.Context, st models.Status) ([]*models.Ticket, error) {
	if err := status(string(st)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.repo.ListColumn(ctx, st)
}

// ListByColumn returns every column keyed by status. Empty columns map to
// an empty slice.
func (s *service) ListByColumn(ctx context.Context) (map[models.Status][]*models.Ticket, error) {
	board := make(map[models.Status][]*models.Ticket, len(models.Statuses))
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		for _, st := range models.Statuses {
			column, err := tx.ListColumn(ctx, st)
			if err != nil {
				return err
			}
			board[st] = column
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list board: %w", err)
	}
	return board, nil
}

// SearchByTitle filters tickets by title substring, unordered
func (s *service) SearchByTitle(ctx context.Context, substring string) ([]*models.Ticket, error) {
	return s.repo.SearchByTitle(ctx, strings.TrimSpace(substring))
}

// ============================================================================
// WRITES
// ============================================================================

// CreateTicket validates the request and appends the ticket to its column
func (s *service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	var created *models.Ticket
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		t := &models.Ticket{Title: req.Title, Content: req.Content, Status: req.Status}
		if err := appendTicket(ctx, tx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.publish(events.Event{Type: events.EventTicketCreated, TicketID: created.ID, Status: string(created.Status)})
	return created, nil
}

// UpdateTicket overwrites title, content and status of an existing ticket
func (s *service) UpdateTicket(ctx context.Context, req UpdateTicketRequest) (*models.Ticket, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validateUpdate(req); err != nil {
		return nil, err
	}

	var (
		updated    *models.Ticket
		fromStatus models.Status
	)
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		e := newChainEdit(ctx, tx)
		t, err := e.get(req.ID)
		if err != nil {
			return err
		}
		fromStatus = t.Status

		if req.Status != t.Status {
			if err := e.moveToEnd(t, req.Status); err != nil {
				return err
			}
			if _, err := e.flush(); err != nil {
				return err
			}
		}

		t.Title = req.Title
		t.Content = req.Content
		if err := tx.UpdateTicketFields(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	ev := events.Event{Type: events.EventTicketUpdated, TicketID: updated.ID, Status: string(updated.Status)}
	if fromStatus != updated.Status {
		ev.FromStatus = string(fromStatus)
	}
	s.publish(ev)
	return updated, nil
}

// DeleteTicket unlinks a ticket from its column and removes it.
// Deleting an unknown ID returns ErrTicketNotFound.
func (s *service) DeleteTicket(ctx context.Context, id string) error {
	if err := ticketID(id); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var st models.Status
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		e := newChainEdit(ctx, tx)
		t, err := e.get(id)
		if err != nil {
			return err
		}
		st = t.Status
		return e.remove(t)
	})
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	s.publish(events.Event{Type: events.EventTicketDeleted, TicketID: id, Status: string(st)})
	return nil
}

// MoveTicket repositions a ticket within or across columns.
// It returns the ticket as stored after the move.
func (s *service) MoveTicket(ctx context.Context, req MoveTicketRequest) (*models.Ticket, error) {
	if err := validateMove(req); err != nil {
		return nil, err
	}

	var (
		result *moveResult
		moved  *models.Ticket
	)
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		var err error
		result, err = reposition(ctx, tx, req)
		if err != nil {
			return err
		}
		moved = result.ticket
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move ticket: %w", err)
	}

	if result.changed {
		ev := events.Event{Type: events.EventTicketMoved, TicketID: moved.ID, Status: string(moved.Status)}
		if result.from != moved.Status {
			ev.FromStatus = string(result.from)
		}
		s.publish(ev)
	}
	return moved, nil
}

// ============================================================================
// BOARD
// ============================================================================

// CheckBoard walks every column and reports counts and chain problems.
// All reads share one transaction, so counts and digest describe the same
// board. A corrupted column is reported, not returned as an error.
func (s *service) CheckBoard(ctx context.Context) (*models.BoardReport, error) {
	var report *models.BoardReport
	columns := make(map[models.Status][]*models.Ticket, len(models.Statuses))

	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		counts, err := tx.CountByStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to count tickets: %w", err)
		}

		report = &models.BoardReport{Healthy: true}
		clear(columns)
		for _, st := range models.Statuses {
			report.Columns = append(report.Columns, models.ColumnCount{Status: st, Count: counts[st]})
			report.Total += counts[st]

			column, err := tx.ListColumn(ctx, st)
			if err != nil {
				if !errors.Is(err, models.ErrInvariantViolation) {
					return err
				}
				report.Healthy = false
				report.Issues = append(report.Issues, err.Error())
				continue
			}
			columns[st] = column
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Healthy {
		digest, err := snapshot.Digest(snapshot.NewBoard(columns))
		if err != nil {
			return nil, err
		}
		report.Digest = digest
	}
	return report, nil
}

// ExportBoard captures the ordered board
func (s *service) ExportBoard(ctx context.Context) (*snapshot.Board, error) {
	columns, err := s.ListByColumn(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.NewBoard(columns), nil
}

// ImportBoard restores an exported board into an empty store, keeping ticket
// IDs and column order. It returns the number of imported tickets.
func (s *service) ImportBoard(ctx context.Context, board *snapshot.Board) (int, error) {
	if err := s.validateBoard(board); err != nil {
		return 0, err
	}

	imported := 0
	err := s.repo.InTx(ctx, func(tx database.TicketRepository) error {
		counts, err := tx.CountByStatus(ctx)
		if err != nil {
			return err
		}
		for _, n := range counts {
			if n > 0 {
				return ErrBoardNotEmpty
			}
		}

		imported = 0
		for _, column := range board.Columns {
			linked := relinkColumn(column.Status, column.Tickets)
			for _, t := range linked {
				next, prev := t.NextID, t.PrevID
				t.NextID, t.PrevID = nil, nil
				if err := tx.InsertTicket(ctx, t); err != nil {
					return err
				}
				t.NextID, t.PrevID = next, prev
			}
			if err := tx.SaveLinks(ctx, linked...); err != nil {
				return err
			}
			imported += len(linked)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import board: %w", err)
	}

	s.publish(events.Event{Type: events.EventBoardImported})
	return imported, nil
}

func (s *service) validateBoard(board *snapshot.Board) error {
	if board == nil {
		return fmt.Errorf("%w: empty board", ErrValidation)
	}
	seen := make(map[string]bool)
	columns := make(map[models.Status]bool, len(board.Columns))
	for _, column := range board.Columns {
		if err := status(string(column.Status)); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		// each column becomes one chain, so a status may appear only once
		if columns[column.Status] {
			return fmt.Errorf("%w: column %s appears more than once", ErrValidation, column.Status)
		}
		columns[column.Status] = true
		for _, t := range column.Tickets {
			if err := ticketID(t.ID); err != nil {
				return fmt.Errorf("%w: %w", ErrValidation, err)
			}
			if seen[t.ID] {
				return fmt.Errorf("%w: duplicate ticket %s", ErrValidation, t.ID)
			}
			seen[t.ID] = true
			err := s.validateCreate(CreateTicketRequest{Title: t.Title, Content: t.Content, Status: column.Status})
			if err != nil {
				return fmt.Errorf("ticket %s: %w", t.ID, err)
			}
		}
	}
	return nil
}

// publish sends a board event if an event client exists.
// Failures are logged and never fail the operation.
func (s *service) publish(ev events.Event) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, ev, events.DefaultPublishRetries); err != nil {
		slog.Debug("board event dropped", "event_type", ev.Type, "error", err)
	}
}
