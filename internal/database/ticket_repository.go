package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// TicketRepo handles ticket rows and their per-column links.
// It runs against either the database handle or an open transaction.
// Inside a transaction it also remembers column head and tail lookups.
type TicketRepo struct {
	q    querier
	ends *columnEnds
}

// ============================================================================
// READS
// ============================================================================

// GetTicket retrieves a ticket by ID
func (r *TicketRepo) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrTicketNotFound, id)
		}
		return nil, fmt.Errorf("failed to get ticket %s: %w", id, err)
	}
	return t, nil
}

// ListColumn returns the tickets of one column in chain order.
// The column is loaded once and walked in memory.
func (r *TicketRepo) ListColumn(ctx context.Context, status models.Status) ([]*models.Ticket, error) {
	members, err := r.columnMembers(ctx, status)
	if err != nil {
		return nil, err
	}

	ordered, err := walkColumn(status, members)
	if err != nil {
		slog.Error("column chain is corrupted", "status", status, "error", err)
		return nil, err
	}
	r.ends.column(status, ordered)
	return ordered, nil
}

// ListAllOrdered returns every ticket, column by column in board order
func (r *TicketRepo) ListAllOrdered(ctx context.Context) ([]*models.Ticket, error) {
	all := make([]*models.Ticket, 0)
	for _, status := range models.Statuses {
		column, err := r.ListColumn(ctx, status)
		if err != nil {
			return nil, err
		}
		all = append(all, column...)
	}
	return all, nil
}

// SearchByTitle returns every ticket whose title contains substring
// (case-insensitive). Results carry no ordering guarantee.
func (r *TicketRepo) SearchByTitle(ctx context.Context, substring string) ([]*models.Ticket, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE title LIKE ? ESCAPE '\'`,
		"%"+escapeLike(substring)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search tickets: %w", err)
	}
	return scanTickets(rows)
}

// CountByStatus returns the number of tickets in each column.
// Every status is present in the result.
func (r *TicketRepo) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}

	rows, err := r.q.QueryContext(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("error closing rows", "error", err)
		}
	}()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[models.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *TicketRepo) columnMembers(ctx context.Context, status models.Status) ([]*models.Ticket, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE status = ?`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to load column %s: %w", status, err)
	}
	return scanTickets(rows)
}

func (r *TicketRepo) countColumn(ctx context.Context, status models.Status) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE status = ?`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count column %s: %w", status, err)
	}
	return n, nil
}

// ============================================================================
// NEIGHBOUR LOOKUPS
// ============================================================================

// FindPredecessor returns the ticket whose next pointer is id, or nil if id
// is a column head. More than one match is a chain violation.
func (r *TicketRepo) FindPredecessor(ctx context.Context, id string) (*models.Ticket, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE next_id = ? LIMIT 2`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find predecessor of %s: %w", id, err)
	}
	found, err := scanTickets(rows)
	if err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		chainErr := models.NewChainError(found[0].Status, id, "more than one predecessor ("+found[0].ID+", "+found[1].ID+")")
		slog.Error("chain violation", "error", chainErr)
		return nil, chainErr
	}
}

// FindColumnHead returns the ticket with no predecessor in status, or nil
// for an empty column.
func (r *TicketRepo) FindColumnHead(ctx context.Context, status models.Status) (*models.Ticket, error) {
	return r.findColumnEnd(ctx, status, "prev_id", "head")
}

// FindColumnTail returns the ticket with no successor in status, or nil
// for an empty column.
func (r *TicketRepo) FindColumnTail(ctx context.Context, status models.Status) (*models.Ticket, error) {
	return r.findColumnEnd(ctx, status, "next_id", "tail")
}

func (r *TicketRepo) findColumnEnd(ctx context.Context, status models.Status, linkColumn, name string) (*models.Ticket, error) {
	if t, ok := r.ends.get(status, name); ok {
		return t, nil
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE status = ? AND `+linkColumn+` IS NULL LIMIT 2`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to find %s of column %s: %w", name, status, err)
	}
	found, err := scanTickets(rows)
	if err != nil {
		return nil, err
	}

	switch len(found) {
	case 1:
		r.ends.put(status, name, found[0])
		return found[0], nil
	case 0:
		n, err := r.countColumn(ctx, status)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			chainErr := models.NewChainError(status, "", fmt.Sprintf("no %s among %d tickets", name, n))
			slog.Error("chain violation", "error", chainErr)
			return nil, chainErr
		}
		r.ends.put(status, name, nil)
		return nil, nil
	default:
		chainErr := models.NewChainError(status, found[1].ID, "multiple "+name+"s (also "+found[0].ID+")")
		slog.Error("chain violation", "error", chainErr)
		return nil, chainErr
	}
}

// ============================================================================
// WRITES
// ============================================================================

// InsertTicket stores a new ticket row, links included.
// A missing ID is filled with a new UUID; zero timestamps are set to now.
func (r *TicketRepo) InsertTicket(ctx context.Context, t *models.Ticket) error {
	r.ends.reset()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tickets (`+ticketColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Content, string(t.Status),
		ptrToNullString(t.NextID), ptrToNullString(t.PrevID),
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// UpdateTicketFields overwrites title, content and status. Links are untouched.
func (r *TicketRepo) UpdateTicketFields(ctx context.Context, t *models.Ticket) error {
	r.ends.reset()
	t.UpdatedAt = time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`UPDATE tickets SET title = ?, content = ?, status = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Content, string(t.Status), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update ticket %s: %w", t.ID, err)
	}
	return requireAffected(res, t.ID)
}

// SaveLinks persists status, next and prev for every given ticket.
// Links are cleared first and then written, so the unique link indexes never
// see a transient duplicate while a chain is being rewired.
func (r *TicketRepo) SaveLinks(ctx context.Context, tickets ...*models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	r.ends.reset()

	for _, t := range tickets {
		res, err := r.q.ExecContext(ctx, `UPDATE tickets SET next_id = NULL, prev_id = NULL WHERE id = ?`, t.ID)
		if err != nil {
			return fmt.Errorf("failed to clear links of %s: %w", t.ID, err)
		}
		if err := requireAffected(res, t.ID); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, t := range tickets {
		t.UpdatedAt = now
		_, err := r.q.ExecContext(ctx,
			`UPDATE tickets SET status = ?, next_id = ?, prev_id = ?, updated_at = ? WHERE id = ?`,
			string(t.Status), ptrToNullString(t.NextID), ptrToNullString(t.PrevID), now, t.ID)
		if err != nil {
			return fmt.Errorf("failed to save links of %s: %w", t.ID, err)
		}
	}
	return nil
}

// DeleteTicket removes a ticket row. Neighbour links are the caller's job.
func (r *TicketRepo) DeleteTicket(ctx context.Context, id string) error {
	r.ends.reset()
	res, err := r.q.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %s: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrTicketNotFound, id)
	}
	return nil
}
