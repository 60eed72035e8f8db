package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/ticketboard/internal/models"
	"github.com/thenoetrevino/ticketboard/internal/tui/state"
)

const minColumnWidth = 20

// View renders the board with any dialog for the current mode on top
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.UIState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	layers := []*lipgloss.Layer{lipgloss.NewLayer(m.renderScreen())}
	if dialog := m.renderDialog(); dialog != "" {
		layers = append(layers, centered(dialog, m.UIState.Width(), m.UIState.Height()))
	}
	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

func (m Model) renderScreen() string {
	header := m.styles.title.Render("ticketboard") +
		m.styles.subtle.Render(fmt.Sprintf("  %d tickets", m.BoardState.Total()))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderBoard(), m.renderStatusBar())
}

func (m Model) columnWidth() int {
	// two border cells and two padding cells per column
	return max((m.UIState.Width()/len(models.Statuses))-4, minColumnWidth)
}

func (m Model) renderBoard() string {
	width := m.columnWidth()
	columns := make([]string, 0, len(models.Statuses))
	for i, st := range models.Statuses {
		columns = append(columns, m.renderColumn(i, st, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) renderColumn(index int, status models.Status, width int) string {
	tickets := m.BoardState.Column(index)

	var b strings.Builder
	b.WriteString(m.styles.header[status].Render(string(status)))
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf(" (%d)", len(tickets))))

	if len(tickets) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render("empty"))
	}
	for row, t := range tickets {
		b.WriteString("\n")
		b.WriteString(m.renderCard(t, width-4, index == m.UIState.SelectedColumn() && row == m.UIState.SelectedTicket()))
	}

	style := m.styles.column.Width(width)
	if index == m.UIState.SelectedColumn() {
		style = style.BorderForeground(m.styles.header[status].GetForeground())
	}
	return style.Render(b.String())
}

func (m Model) renderCard(t *models.Ticket, width int, selected bool) string {
	style := m.styles.card
	if selected {
		style = m.styles.selectedCard
	}
	body := truncate(t.Title, width) + "\n" + m.styles.cardID.Render(shortID(t.ID))
	return style.Width(width).Render(body)
}

func (m Model) renderStatusBar() string {
	conn := m.styles.statusOffline.Render("● " + m.Connection.String())
	if m.Connection == state.Connected {
		conn = m.styles.statusLive.Render("● " + m.Connection.String())
	}

	if msg, level := m.NotificationState.Message(); msg != "" {
		style := m.styles.info
		switch level {
		case state.LevelWarning:
			style = m.styles.warning
		case state.LevelError:
			style = m.styles.error
		}
		return conn + "  " + style.Render(msg)
	}
	return conn + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

// renderDialog returns the overlay for the current mode, or "" in NormalMode
func (m Model) renderDialog() string {
	switch m.UIState.Mode() {
	case state.TicketFormMode:
		if !m.FormState.Active() {
			return ""
		}
		return m.styles.dialog.Width(64).Render(
			m.styles.title.Render("New ticket in "+string(m.selectedStatus())) + "\n\n" +
				m.FormState.TicketForm.View() + "\n" +
				m.styles.subtle.Render(m.keys.SaveForm.Help().Key+" save  esc cancel"))
	case state.SearchMode:
		return m.styles.dialog.Width(60).Render(
			m.styles.title.Render("Search") + "\n\n" + m.input.View())
	case state.DeleteConfirmMode:
		t := m.selectedTicket()
		if t == nil {
			return ""
		}
		return m.styles.dangerDialog.Width(50).Render(
			fmt.Sprintf("Delete %q?\n\n[y]es  [n]o", t.Title))
	case state.HelpMode:
		return m.styles.dialog.Render(
			m.styles.title.Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()) +
				"\n\n" + m.styles.subtle.Render("Press any key to close"))
	}
	return ""
}

// centered positions content in the middle of the screen
func centered(content string, screenWidth, screenHeight int) *lipgloss.Layer {
	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y)
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width < 2 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
