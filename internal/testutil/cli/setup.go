package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/ticketboard/internal/app"
	"github.com/thenoetrevino/ticketboard/internal/models"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
	"github.com/thenoetrevino/ticketboard/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T, opts ...app.Option) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// EventPublisher is nil unless passed in opts
	appInstance := app.New(db, opts...)
	t.Cleanup(func() { _ = appInstance.Close() })

	return db, appInstance
}

// CreateTestTicket creates a ticket through the service, appending it to
// status, and returns its ID. Content is derived from the title.
func CreateTestTicket(t *testing.T, a *app.App, title string, status models.Status) string {
	t.Helper()
	ticket, err := a.TicketService.CreateTicket(context.Background(), ticketservice.CreateTicketRequest{
		Title:   title,
		Content: "About " + title,
		Status:  status,
	})
	if err != nil {
		t.Fatalf("Failed to create ticket %q: %v", title, err)
	}
	return ticket.ID
}

// ColumnIDs returns the IDs of a column in chain order
func ColumnIDs(t *testing.T, a *app.App, status models.Status) []string {
	t.Helper()
	tickets, err := a.TicketService.ListColumn(context.Background(), status)
	if err != nil {
		t.Fatalf("Failed to list %s: %v", status, err)
	}
	ids := make([]string, 0, len(tickets))
	for _, tk := range tickets {
		ids = append(ids, tk.ID)
	}
	return ids
}
