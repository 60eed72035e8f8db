package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/ticketboard/internal/database"
	"github.com/thenoetrevino/ticketboard/internal/models"

	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with the real migrations applied.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// InsertChain inserts a correctly linked column holding ids in order.
// Titles are "Ticket <id>".
func InsertChain(t *testing.T, db *sql.DB, status models.Status, ids ...string) {
	t.Helper()
	for i, id := range ids {
		var prev, next any
		if i > 0 {
			prev = ids[i-1]
		}
		if i < len(ids)-1 {
			next = ids[i+1]
		}
		InsertRawTicket(t, db, id, status, next, prev)
	}
}

// InsertRawTicket inserts a row with arbitrary links (nil means NULL), for
// building corrupted fixtures.
func InsertRawTicket(t *testing.T, db *sql.DB, id string, status models.Status, next, prev any) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tickets (id, title, content, status, next_id, prev_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, "Ticket "+id, "Content of "+id, string(status), next, prev, now, now)
	if err != nil {
		t.Fatalf("Failed to insert ticket %s: %v", id, err)
	}
}

// TicketLinks reads the stored status, next_id and prev_id of a ticket
func TicketLinks(t *testing.T, db *sql.DB, id string) (status models.Status, next, prev *string) {
	t.Helper()
	var st string
	var n, p sql.NullString
	err := db.QueryRowContext(context.Background(),
		`SELECT status, next_id, prev_id FROM tickets WHERE id = ?`, id).Scan(&st, &n, &p)
	if err != nil {
		t.Fatalf("Failed to read links of %s: %v", id, err)
	}
	if n.Valid {
		next = &n.String
	}
	if p.Valid {
		prev = &p.String
	}
	return models.Status(st), next, prev
}

// TicketCount returns the number of stored tickets
func TicketCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM tickets`).Scan(&n); err != nil {
		t.Fatalf("Failed to count tickets: %v", err)
	}
	return n
}
