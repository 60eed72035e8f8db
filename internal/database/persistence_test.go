package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// Tests in this file close and reopen a file-backed database to make sure
// what a transaction wrote is what the next process reads.

func openBoard(t *testing.T, path string) *Repository {
	t.Helper()
	db, err := InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

func TestChainPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.db")

	repo := openBoard(t, path)
	a := &models.Ticket{ID: "a", Title: "first", Content: "x", Status: models.StatusToDo}
	b := &models.Ticket{ID: "b", Title: "second", Content: "y", Status: models.StatusToDo}
	c := &models.Ticket{ID: "c", Title: "third", Content: "z", Status: models.StatusToDo}

	err := repo.InTx(ctx, func(tx TicketRepository) error {
		for _, tk := range []*models.Ticket{a, b, c} {
			if err := tx.InsertTicket(ctx, tk); err != nil {
				return err
			}
		}
		a.NextID = strPtr("b")
		b.PrevID, b.NextID = strPtr("a"), strPtr("c")
		c.PrevID = strPtr("b")
		return tx.SaveLinks(ctx, a, b, c)
	})
	if err != nil {
		t.Fatalf("InTx failed: %v", err)
	}
	if err := repo.DB().Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openBoard(t, path)
	got, err := reopened.ListColumn(ctx, models.StatusToDo)
	if err != nil {
		t.Fatalf("ListColumn failed: %v", err)
	}
	assertOrder(t, got, "a", "b", "c")

	mid, err := reopened.GetTicket(ctx, "b")
	if err != nil {
		t.Fatalf("GetTicket failed: %v", err)
	}
	if mid.PrevID == nil || *mid.PrevID != "a" || mid.NextID == nil || *mid.NextID != "c" {
		t.Errorf("Expected b linked between a and c, got prev=%v next=%v", mid.PrevID, mid.NextID)
	}
	if mid.Title != "second" || mid.Content != "y" {
		t.Errorf("Fields not persisted: %+v", mid)
	}
	if mid.CreatedAt.IsZero() || mid.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be persisted")
	}
}

func TestFailedTransactionLeavesNothingOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.db")
	boom := errors.New("boom")

	repo := openBoard(t, path)
	err := repo.InTx(ctx, func(tx TicketRepository) error {
		if err := tx.InsertTicket(ctx, &models.Ticket{Title: "lost", Content: "x", Status: models.StatusDone}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	_ = repo.DB().Close()

	reopened := openBoard(t, path)
	counts, err := reopened.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	for status, n := range counts {
		if n != 0 {
			t.Errorf("Expected empty %s column, got %d", status, n)
		}
	}
}

func TestMigrationsRunOnceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")

	first := openBoard(t, path)
	_ = first.DB().Close()

	second := openBoard(t, path)
	var rows int
	if err := second.DB().QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&rows); err != nil {
		t.Fatalf("Failed to read schema_version: %v", err)
	}
	if rows != len(migrations) {
		t.Errorf("Expected %d schema_version rows, got %d", len(migrations), rows)
	}
}
