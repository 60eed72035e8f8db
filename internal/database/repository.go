package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// DataStore is everything the ticket service needs from storage:
// plain reads plus atomic units of work.
type DataStore interface {
	TicketReader
	ChainReader
	InTx(ctx context.Context, fn func(TicketRepository) error) error
}

// Repository is the board store. Reads run directly against the database;
// writes go through InTx so each operation is atomic.
type Repository struct {
	*TicketRepo
	db         *sql.DB
	maxRetries int
	baseDelay  time.Duration
}

// Option configures a Repository
type Option func(*Repository)

// WithMaxRetries sets how many times a transaction is attempted when SQLite
// reports the database as busy.
func WithMaxRetries(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxRetries = n
		}
	}
}

// WithRetryDelay sets the first backoff delay between busy retries
func WithRetryDelay(d time.Duration) Option {
	return func(r *Repository) {
		if d > 0 {
			r.baseDelay = d
		}
	}
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	r := &Repository{
		TicketRepo: &TicketRepo{q: db},
		db:         db,
		maxRetries: models.DefaultMaxRetries,
		baseDelay:  10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DB returns the underlying database handle
func (r *Repository) DB() *sql.DB {
	return r.db
}

// InTx runs fn inside one transaction. Any error rolls the whole unit back.
// A busy database rolls back and re-runs fn with exponential backoff, so fn
// must do all of its reads through the repository it is given.
func (r *Repository) InTx(ctx context.Context, fn func(TicketRepository) error) error {
	var err error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err = withTx(ctx, r.db, func(tx *sql.Tx) error {
			return fn(&TicketRepo{q: tx, ends: newColumnEnds()})
		})
		if err == nil || !IsBusyError(err) {
			return err
		}

		if attempt < r.maxRetries-1 {
			delay := backoff(r.baseDelay, attempt)
			slog.Warn("database busy, retrying transaction",
				"attempt", attempt+1,
				"max_retries", r.maxRetries,
				"retry_delay", delay)
			if sleepErr := sleepContext(ctx, delay); sleepErr != nil {
				return sleepErr
			}
		}
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", r.maxRetries, err)
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
