package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/ticketboard/internal/config/colors"
	"github.com/thenoetrevino/ticketboard/internal/tui/state"
)

// newTicketForm builds the new ticket form. Values are written through
// title and content as the user types.
func newTicketForm(title, content *string, scheme colors.ColorScheme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("Short summary...").
				Value(title),
			huh.NewText().
				Key("content").
				Title("Content").
				Placeholder("What needs doing...").
				CharLimit(500).
				Lines(5).
				Value(content),
		),
	).WithTheme(formTheme(scheme))
}

// formTheme matches the form to the board's color scheme
func formTheme(scheme colors.ColorScheme) huh.Theme {
	scheme.ApplyDefaults()
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(scheme.Accent)
		subtle := lipgloss.Color(scheme.Subtle)
		title := lipgloss.Color(scheme.Title)
		errorColor := lipgloss.Color(scheme.Error)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(title).Bold(true)
		t.Focused.Description = t.Focused.Description.Foreground(subtle)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
		t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
		t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(subtle)
		t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)
		return t
	})
}

// openTicketForm starts a new ticket in the selected column
func (m Model) openTicketForm() (tea.Model, tea.Cmd) {
	m.FormState.Clear()
	m.FormState.TicketForm = newTicketForm(&m.FormState.Title, &m.FormState.Content, m.Config.ColorScheme)
	m.UIState.SetMode(state.TicketFormMode)
	return m, m.FormState.TicketForm.Init()
}

// handleForm forwards msg to the open form. Esc discards the form and the
// save key submits it from any field.
func (m Model) handleForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.FormState.Active() {
		m.UIState.SetMode(state.NormalMode)
		return m, nil
	}

	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case k.String() == "esc":
			m.closeForm()
			return m, nil
		case key.Matches(k, m.keys.SaveForm):
			m.FormState.TicketForm.State = huh.StateCompleted
			return m.submitForm()
		}
	}

	model, cmd := m.FormState.TicketForm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.FormState.TicketForm = f
	}

	switch m.FormState.TicketForm.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm closes the form and creates the ticket. Validation happens in
// the ticket service; a rejected ticket shows up in the status bar.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title, content := m.FormState.Title, m.FormState.Content
	m.closeForm()
	return m, m.createTicket(title, content, m.selectedStatus())
}

func (m Model) closeForm() {
	m.FormState.Clear()
	m.UIState.SetMode(state.NormalMode)
}
