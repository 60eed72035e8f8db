package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/ticketboard/internal/models"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
	"github.com/thenoetrevino/ticketboard/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.Ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UIState.SetSize(msg.Width, msg.Height)
		return m, nil

	case boardLoadedMsg:
		current := ""
		if t := m.selectedTicket(); t != nil {
			current = t.ID
		}
		m.BoardState.SetColumns(msg.columns)
		if msg.selectID != "" {
			m.selectTicket(msg.selectID)
		} else {
			m.selectTicket(current)
		}
		m.clampCursor()
		if msg.notice != "" {
			m.NotificationState.Add(state.LevelInfo, msg.notice)
		}
		return m, nil

	case searchResultMsg:
		if len(msg.tickets) == 0 {
			m.NotificationState.Add(state.LevelWarning, fmt.Sprintf("No tickets match %q", msg.query))
			return m, nil
		}
		m.selectTicket(msg.tickets[0].ID)
		m.NotificationState.Add(state.LevelInfo, fmt.Sprintf("%d match(es) for %q", len(msg.tickets), msg.query))
		return m, nil

	case errMsg:
		m.NotificationState.Add(state.LevelError, msg.err.Error())
		return m, nil

	case RefreshMsg:
		return m, tea.Batch(m.loadBoard(""), m.listen())

	case ConnectionLostMsg:
		m.Connection = state.Disconnected
		m.EventChan = nil
		m.NotificationState.Add(state.LevelWarning, "Lost connection to the daemon")
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// cursor blinks and form field changes
	switch m.UIState.Mode() {
	case state.TicketFormMode:
		return m.handleForm(msg)
	case state.SearchMode:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.UIState.Mode() {
	case state.NormalMode:
		return m.handleNormal(msg)
	case state.TicketFormMode:
		return m.handleForm(msg)
	case state.SearchMode:
		return m.handleSearch(msg)
	case state.DeleteConfirmMode:
		return m.handleDeleteConfirm(msg)
	case state.HelpMode:
		m.UIState.SetMode(state.NormalMode)
	}
	return m, nil
}

// ============================================================================
// NORMAL MODE
// ============================================================================

func (m Model) handleNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.NotificationState.Clear()
	col, row := m.UIState.SelectedColumn(), m.UIState.SelectedTicket()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.UIState.SetMode(state.HelpMode)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard("")

	case key.Matches(msg, m.keys.Left):
		m.UIState.SetSelection(col-1, row)
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		m.UIState.SetSelection(col+1, row)
		m.clampCursor()
	case key.Matches(msg, m.keys.Up):
		m.UIState.SetSelection(col, row-1)
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.UIState.SetSelection(col, row+1)
		m.clampCursor()

	case key.Matches(msg, m.keys.Add):
		return m.openTicketForm()
	case key.Matches(msg, m.keys.Search):
		cmd := m.startSearch()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if m.selectedTicket() != nil {
			m.UIState.SetMode(state.DeleteConfirmMode)
		}

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveWithin(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveWithin(1)
	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveAcross(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveAcross(1)
	}
	return m, nil
}

// moveWithin swaps the selected ticket with its neighbour: one place up
// when delta is -1, one place down when delta is 1
func (m Model) moveWithin(delta int) tea.Cmd {
	t := m.selectedTicket()
	if t == nil {
		return nil
	}
	col, row := m.UIState.SelectedColumn(), m.UIState.SelectedTicket()
	neighbour := m.BoardState.Ticket(col, row+delta)
	if neighbour == nil {
		return nil
	}

	req := ticketservice.MoveTicketRequest{TicketID: t.ID}
	anchor := neighbour.ID
	if delta < 0 {
		req.BeforeID = &anchor
	} else {
		req.AfterID = &anchor
	}
	return m.moveTicket(req)
}

// moveAcross sends the selected ticket to the end of the adjacent column
func (m Model) moveAcross(delta int) tea.Cmd {
	t := m.selectedTicket()
	if t == nil {
		return nil
	}
	target := m.UIState.SelectedColumn() + delta
	if target < 0 || target >= len(models.Statuses) {
		return nil
	}
	return m.moveTicket(ticketservice.MoveTicketRequest{
		TicketID: t.ID,
		ToStatus: models.Statuses[target],
	})
}

// ============================================================================
// SEARCH
// ============================================================================

func (m *Model) startSearch() tea.Cmd {
	m.input.Reset()
	m.input.Placeholder = "Search titles"
	m.UIState.SetMode(state.SearchMode)
	return m.input.Focus()
}

func (m *Model) finishSearch() {
	m.input.Blur()
	m.input.Reset()
	m.UIState.SetMode(state.NormalMode)
}

func (m Model) handleSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.finishSearch()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.finishSearch()
		if value == "" {
			return m, nil
		}
		return m, m.search(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ============================================================================
// CONFIRMATION
// ============================================================================

func (m Model) handleDeleteConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.UIState.SetMode(state.NormalMode)
		if t := m.selectedTicket(); t != nil {
			return m, m.deleteTicket(t)
		}
	case "n", "esc":
		m.UIState.SetMode(state.NormalMode)
	}
	return m, nil
}
