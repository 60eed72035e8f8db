package tui

import (
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// boardLoadedMsg carries a fresh read of the board. selectID, when set, is
// the ticket the cursor should land on; notice is shown in the status bar.
type boardLoadedMsg struct {
	columns  map[models.Status][]*models.Ticket
	selectID string
	notice   string
}

// searchResultMsg carries the tickets whose titles matched a search
type searchResultMsg struct {
	query   string
	tickets []*models.Ticket
}

// errMsg reports a failed operation
type errMsg struct {
	err error
}

// RefreshMsg is sent when the daemon reports a change made elsewhere
type RefreshMsg struct {
	Event events.Event
}

// ConnectionLostMsg is sent when the event stream ends
type ConnectionLostMsg struct{}
