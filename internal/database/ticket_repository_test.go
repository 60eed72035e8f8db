package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

func TestInsertAndGetTicket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tk := &models.Ticket{Title: "Write docs", Content: "all of them", Status: models.StatusToDo}
	if err := repo.InsertTicket(ctx, tk); err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}
	if tk.ID == "" {
		t.Fatal("expected generated ID")
	}
	if tk.CreatedAt.IsZero() || tk.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := repo.GetTicket(ctx, tk.ID)
	if err != nil {
		t.Fatalf("GetTicket failed: %v", err)
	}
	if got.Title != "Write docs" || got.Content != "all of them" || got.Status != models.StatusToDo {
		t.Errorf("unexpected ticket: %+v", got)
	}
	if got.NextID != nil || got.PrevID != nil {
		t.Errorf("expected no links, got next=%v prev=%v", got.NextID, got.PrevID)
	}
}

func TestGetTicket_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetTicket(context.Background(), "missing")
	if !errors.Is(err, models.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if !IsNotFoundError(err) {
		t.Error("IsNotFoundError should recognise ErrTicketNotFound")
	}
}

func TestInsertTicket_RejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.InsertTicket(context.Background(), &models.Ticket{Title: "x", Content: "y", Status: "backlog"})
	if err == nil {
		t.Fatal("expected CHECK constraint failure for unknown status")
	}
}

func TestListColumn_FollowsLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	insertChain(t, db, models.StatusToDo, "c1", "c2", "c3")
	insertChain(t, db, models.StatusDone, "d1")

	got, err := repo.ListColumn(context.Background(), models.StatusToDo)
	if err != nil {
		t.Fatalf("ListColumn failed: %v", err)
	}
	assertOrder(t, got, "c1", "c2", "c3")

	empty, err := repo.ListColumn(context.Background(), models.StatusToTest)
	if err != nil {
		t.Fatalf("ListColumn on empty column failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty column, got %v", ids(empty))
	}
}

func TestListAllOrdered_ColumnsInBoardOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	insertChain(t, db, models.StatusDone, "d1", "d2")
	insertChain(t, db, models.StatusToTest, "t1")
	insertChain(t, db, models.StatusToDo, "a1", "a2")

	got, err := repo.ListAllOrdered(context.Background())
	if err != nil {
		t.Fatalf("ListAllOrdered failed: %v", err)
	}
	assertOrder(t, got, "a1", "a2", "t1", "d1", "d2")
}

func TestListColumn_DetectsStoredCorruption(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, repoDB *Repository)
	}{
		{
			name: "two heads",
			setup: func(t *testing.T, r *Repository) {
				insertRaw(t, r.DB(), "a", models.StatusToDo, nil, nil)
				insertRaw(t, r.DB(), "b", models.StatusToDo, nil, nil)
			},
		},
		{
			name: "cycle",
			setup: func(t *testing.T, r *Repository) {
				insertRaw(t, r.DB(), "a", models.StatusToDo, "b", "b")
				insertRaw(t, r.DB(), "b", models.StatusToDo, "a", "a")
			},
		},
		{
			name: "dangling next",
			setup: func(t *testing.T, r *Repository) {
				insertRaw(t, r.DB(), "a", models.StatusToDo, "ghost", nil)
			},
		},
		{
			name: "next points into another column",
			setup: func(t *testing.T, r *Repository) {
				insertRaw(t, r.DB(), "a", models.StatusToDo, "z", nil)
				insertRaw(t, r.DB(), "z", models.StatusDone, nil, "a")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(setupTestDB(t))
			tt.setup(t, repo)

			_, err := repo.ListColumn(context.Background(), models.StatusToDo)
			if !errors.Is(err, models.ErrInvariantViolation) {
				t.Fatalf("expected ErrInvariantViolation, got %v", err)
			}
		})
	}
}

func TestFindPredecessor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	insertChain(t, db, models.StatusToDo, "a", "b", "c")

	pred, err := repo.FindPredecessor(ctx, "c")
	if err != nil {
		t.Fatalf("FindPredecessor failed: %v", err)
	}
	if pred == nil || pred.ID != "b" {
		t.Fatalf("expected predecessor b, got %+v", pred)
	}

	pred, err = repo.FindPredecessor(ctx, "a")
	if err != nil {
		t.Fatalf("FindPredecessor failed: %v", err)
	}
	if pred != nil {
		t.Fatalf("expected head to have no predecessor, got %s", pred.ID)
	}
}

func TestFindColumnHeadAndTail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	insertChain(t, db, models.StatusToTest, "x", "y", "z")

	head, err := repo.FindColumnHead(ctx, models.StatusToTest)
	if err != nil || head == nil || head.ID != "x" {
		t.Fatalf("expected head x, got %+v (err %v)", head, err)
	}
	tail, err := repo.FindColumnTail(ctx, models.StatusToTest)
	if err != nil || tail == nil || tail.ID != "z" {
		t.Fatalf("expected tail z, got %+v (err %v)", tail, err)
	}

	head, err = repo.FindColumnHead(ctx, models.StatusDone)
	if err != nil || head != nil {
		t.Fatalf("expected nil head for empty column, got %+v (err %v)", head, err)
	}
	tail, err = repo.FindColumnTail(ctx, models.StatusDone)
	if err != nil || tail != nil {
		t.Fatalf("expected nil tail for empty column, got %+v (err %v)", tail, err)
	}
}

func TestFindColumnTail_Corrupted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("two tails", func(t *testing.T) {
		insertRaw(t, db, "a", models.StatusToDo, nil, nil)
		insertRaw(t, db, "b", models.StatusToDo, nil, nil)

		_, err := repo.FindColumnTail(ctx, models.StatusToDo)
		if !errors.Is(err, models.ErrInvariantViolation) {
			t.Fatalf("expected ErrInvariantViolation, got %v", err)
		}
	})

	t.Run("no tail", func(t *testing.T) {
		insertRaw(t, db, "p", models.StatusDone, "q", "q")
		insertRaw(t, db, "q", models.StatusDone, "p", "p")

		_, err := repo.FindColumnTail(ctx, models.StatusDone)
		if !errors.Is(err, models.ErrInvariantViolation) {
			t.Fatalf("expected ErrInvariantViolation, got %v", err)
		}
	})
}

func TestSaveLinks_RewiresWithoutUniqueConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	insertChain(t, db, models.StatusToDo, "a", "b", "c")

	// reverse the column: c -> b -> a
	a, _ := repo.GetTicket(ctx, "a")
	b, _ := repo.GetTicket(ctx, "b")
	c, _ := repo.GetTicket(ctx, "c")
	c.PrevID, c.NextID = nil, strPtr("b")
	b.PrevID, b.NextID = strPtr("c"), strPtr("a")
	a.PrevID, a.NextID = strPtr("b"), nil

	if err := repo.SaveLinks(ctx, a, b, c); err != nil {
		t.Fatalf("SaveLinks failed: %v", err)
	}

	got, err := repo.ListColumn(ctx, models.StatusToDo)
	if err != nil {
		t.Fatalf("ListColumn failed: %v", err)
	}
	assertOrder(t, got, "c", "b", "a")
}

func TestSaveLinks_UnknownTicket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.SaveLinks(context.Background(), &models.Ticket{ID: "nope", Status: models.StatusToDo})
	if !errors.Is(err, models.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestUniqueIndexRejectsFork(t *testing.T) {
	db := setupTestDB(t)
	insertRaw(t, db, "a", models.StatusToDo, "c", nil)

	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tickets (id, title, content, status, next_id, prev_id, created_at, updated_at)
		 VALUES ('b', 't', 'c', 'to-do', 'c', 'a', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected unique index to reject a second ticket pointing at c")
	}
}

func TestDeleteTicket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	insertChain(t, db, models.StatusToDo, "a")

	if err := repo.DeleteTicket(ctx, "a"); err != nil {
		t.Fatalf("DeleteTicket failed: %v", err)
	}
	if err := repo.DeleteTicket(ctx, "a"); !errors.Is(err, models.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound on second delete, got %v", err)
	}
}

func TestUpdateTicketFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	insertChain(t, db, models.StatusToDo, "a", "b")

	a, _ := repo.GetTicket(ctx, "a")
	a.Title = "renamed"
	a.Content = "new content"
	if err := repo.UpdateTicketFields(ctx, a); err != nil {
		t.Fatalf("UpdateTicketFields failed: %v", err)
	}

	got, _ := repo.GetTicket(ctx, "a")
	if got.Title != "renamed" || got.Content != "new content" {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.NextID == nil || *got.NextID != "b" {
		t.Errorf("links should be untouched, got next=%v", got.NextID)
	}

	missing := &models.Ticket{ID: "zzz", Title: "x", Content: "y", Status: models.StatusToDo}
	if err := repo.UpdateTicketFields(ctx, missing); !errors.Is(err, models.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestSearchByTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, title := range []string{"Fix login", "fix LOGOUT", "100% done", "Deploy"} {
		if err := repo.InsertTicket(ctx, &models.Ticket{Title: title, Content: "c", Status: models.StatusToDo}); err != nil {
			t.Fatalf("InsertTicket failed: %v", err)
		}
	}

	got, err := repo.SearchByTitle(ctx, "fix")
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 case-insensitive matches, got %d", len(got))
	}

	got, err = repo.SearchByTitle(ctx, "%")
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "100% done" {
		t.Errorf("expected literal %% match only, got %v", ids(got))
	}
}

func TestSearchByTitle_ReturnsEveryMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	const n = 250
	for i := 0; i < n; i++ {
		tk := &models.Ticket{Title: fmt.Sprintf("task%03d", i), Content: "c", Status: models.StatusToDo}
		if err := repo.InsertTicket(ctx, tk); err != nil {
			t.Fatalf("InsertTicket failed: %v", err)
		}
	}

	got, err := repo.SearchByTitle(ctx, "task")
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(got) != n {
		t.Errorf("expected all %d matches, got %d", n, len(got))
	}
}

func TestCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	insertChain(t, db, models.StatusToDo, "a", "b")
	insertChain(t, db, models.StatusDone, "c")

	counts, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[models.StatusToDo] != 2 || counts[models.StatusToTest] != 0 || counts[models.StatusDone] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts[models.StatusToTest]; !ok {
		t.Error("every status should be present")
	}
}
