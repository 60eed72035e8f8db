// Package tui is the interactive board screen: three columns side by side,
// a cursor, and keys that create, reorder, move and delete tickets.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/ticketboard/internal/app"
	"github.com/thenoetrevino/ticketboard/internal/config"
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/models"
	"github.com/thenoetrevino/ticketboard/internal/tui/state"
)

// Model is the board screen's state
type Model struct {
	Ctx    context.Context
	App    *app.App
	Config *config.Config

	UIState           *state.UIState
	BoardState        *state.BoardState
	NotificationState *state.NotificationState
	FormState         *state.FormState
	Connection        state.ConnectionStatus

	// EventChan delivers daemon events; nil when running without the daemon
	EventChan <-chan events.Event

	keys   keyMap
	help   help.Model
	input  textinput.Model
	styles styles
}

// InitialModel builds the board screen. eventChan may be nil.
func InitialModel(ctx context.Context, a *app.App, cfg *config.Config, eventChan <-chan events.Event) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 100

	m := Model{
		Ctx:               ctx,
		App:               a,
		Config:            cfg,
		UIState:           state.NewUIState(),
		BoardState:        state.NewBoardState(),
		NotificationState: state.NewNotificationState(),
		FormState:         state.NewFormState(),
		EventChan:         eventChan,
		keys:              newKeyMap(cfg.KeyMappings),
		help:              help.New(),
		input:             input,
		styles:            newStyles(cfg.ColorScheme),
	}
	if eventChan != nil {
		m.Connection = state.Connected
	}
	return m
}

// Init loads the board and starts listening for daemon events
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoard(""), m.listen())
}

// selectedStatus is the column under the cursor
func (m Model) selectedStatus() models.Status {
	return models.Statuses[m.UIState.SelectedColumn()]
}

// selectedTicket is the ticket under the cursor, or nil in an empty column
func (m Model) selectedTicket() *models.Ticket {
	return m.BoardState.Ticket(m.UIState.SelectedColumn(), m.UIState.SelectedTicket())
}

// selectTicket puts the cursor on id if it is on the board
func (m Model) selectTicket(id string) {
	if id == "" {
		return
	}
	if col, row, ok := m.BoardState.Locate(id); ok {
		m.UIState.SetSelection(col, row)
	}
}

func (m Model) clampCursor() {
	m.UIState.Clamp(len(models.Statuses), m.BoardState.Len)
}
