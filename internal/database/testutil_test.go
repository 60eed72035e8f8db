package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/thenoetrevino/ticketboard/internal/models"

	_ "modernc.org/sqlite"
)

// ============================================================================
// Local Test Helpers (to avoid import cycle with testutil)
// ============================================================================

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// insertChain inserts a correctly linked column with the given ids, in order
func insertChain(t *testing.T, db *sql.DB, status models.Status, ids ...string) {
	t.Helper()
	for i, id := range ids {
		var prev, next any
		if i > 0 {
			prev = ids[i-1]
		}
		if i < len(ids)-1 {
			next = ids[i+1]
		}
		insertRaw(t, db, id, status, next, prev)
	}
}

// insertRaw inserts a row with arbitrary links; nil means NULL
func insertRaw(t *testing.T, db *sql.DB, id string, status models.Status, next, prev any) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tickets (id, title, content, status, next_id, prev_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, "title "+id, "content "+id, string(status), next, prev, now, now)
	if err != nil {
		t.Fatalf("Failed to insert ticket %s: %v", id, err)
	}
}

func ids(tickets []*models.Ticket) []string {
	out := make([]string, len(tickets))
	for i, tk := range tickets {
		out[i] = tk.ID
	}
	return out
}

func assertOrder(t *testing.T, got []*models.Ticket, want ...string) {
	t.Helper()
	if fmt.Sprint(ids(got)) != fmt.Sprint(want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
}

func strPtr(s string) *string {
	return &s
}
