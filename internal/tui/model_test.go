package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/ticketboard/internal/app"
	"github.com/thenoetrevino/ticketboard/internal/config"
	"github.com/thenoetrevino/ticketboard/internal/events"
	"github.com/thenoetrevino/ticketboard/internal/models"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
	"github.com/thenoetrevino/ticketboard/internal/testutil"
	"github.com/thenoetrevino/ticketboard/internal/tui/state"
)

// ============================================================================
// Helpers
// ============================================================================

func setupModel(t *testing.T, eventChan <-chan events.Event) (Model, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a := app.New(db)
	m := InitialModel(context.Background(), a, config.Default(), eventChan)
	return m, a
}

func createTicket(t *testing.T, a *app.App, title string, status models.Status) string {
	t.Helper()
	tk, err := a.TicketService.CreateTicket(context.Background(), ticketservice.CreateTicketRequest{
		Title:   title,
		Content: "About " + title,
		Status:  status,
	})
	require.NoError(t, err)
	return tk.ID
}

func columnIDs(t *testing.T, a *app.App, status models.Status) []string {
	t.Helper()
	tickets, err := a.TicketService.ListColumn(context.Background(), status)
	require.NoError(t, err)
	ids := make([]string, len(tickets))
	for i, tk := range tickets {
		ids[i] = tk.ID
	}
	return ids
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "ctrl+s":
		return tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl})
	}
	return tea.KeyPressMsg(tea.Key{Code: []rune(s)[0], Text: s})
}

// update sends one message and returns the model and the command it issued
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// press sends one key and discards the resulting command
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, keyPress(k))
	}
	return m
}

// typeText feeds s to the focused input one rune at a time
func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, keyPress(string(r)))
	}
	return m
}

// run executes cmd and feeds its message back into the model. Follow-up
// commands are not run.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = run(t, m, c)
		}
		return m
	}
	if msg == nil {
		return m
	}
	m, _ = update(m, msg)
	return m
}

// pressAndRun sends a key and runs the command it produces
func pressAndRun(t *testing.T, m Model, k string) Model {
	t.Helper()
	m, cmd := update(m, keyPress(k))
	return run(t, m, cmd)
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return run(t, m, m.Init())
}

// ============================================================================
// Loading and navigation
// ============================================================================

func TestModel_LoadsBoardInChainOrder(t *testing.T) {
	m, a := setupModel(t, nil)
	first := createTicket(t, a, "Fix login", models.StatusToDo)
	createTicket(t, a, "Add search", models.StatusToDo)
	createTicket(t, a, "Ship it", models.StatusDone)

	m = loaded(t, m)

	assert.Equal(t, 3, m.BoardState.Total())
	assert.Equal(t, 2, m.BoardState.Len(0))
	assert.Equal(t, 0, m.BoardState.Len(1))
	require.NotNil(t, m.selectedTicket())
	assert.Equal(t, first, m.selectedTicket().ID)
	assert.Equal(t, state.Disconnected, m.Connection)
}

func TestModel_Navigation(t *testing.T) {
	m, a := setupModel(t, nil)
	createTicket(t, a, "Fix login", models.StatusToDo)
	second := createTicket(t, a, "Add search", models.StatusToDo)
	done := createTicket(t, a, "Ship it", models.StatusDone)
	m = loaded(t, m)

	m = press(m, "j")
	assert.Equal(t, second, m.selectedTicket().ID)

	m = press(m, "j")
	assert.Equal(t, second, m.selectedTicket().ID, "cursor stops at the end of the column")

	m = press(m, "l")
	assert.Equal(t, 1, m.UIState.SelectedColumn())
	assert.Nil(t, m.selectedTicket(), "to-test is empty")

	m = press(m, "l", "l")
	assert.Equal(t, 2, m.UIState.SelectedColumn(), "cursor stops at the last column")
	assert.Equal(t, done, m.selectedTicket().ID)

	m = press(m, "h", "h", "h", "k")
	assert.Equal(t, 0, m.UIState.SelectedColumn())
	assert.Equal(t, 0, m.UIState.SelectedTicket())
}

// ============================================================================
// Moves
// ============================================================================

func TestModel_MoveWithinColumn(t *testing.T) {
	m, a := setupModel(t, nil)
	first := createTicket(t, a, "Fix login", models.StatusToDo)
	second := createTicket(t, a, "Add search", models.StatusToDo)
	third := createTicket(t, a, "Write docs", models.StatusToDo)
	m = loaded(t, m)

	m = pressAndRun(t, m, "J")
	assert.Equal(t, []string{second, first, third}, columnIDs(t, a, models.StatusToDo))
	assert.Equal(t, first, m.selectedTicket().ID, "cursor follows the moved ticket")
	assert.Equal(t, 1, m.UIState.SelectedTicket())

	m = pressAndRun(t, m, "J")
	assert.Equal(t, []string{second, third, first}, columnIDs(t, a, models.StatusToDo))

	m = pressAndRun(t, m, "J")
	assert.Equal(t, []string{second, third, first}, columnIDs(t, a, models.StatusToDo), "last ticket cannot move down")

	m = pressAndRun(t, m, "K")
	m = pressAndRun(t, m, "K")
	assert.Equal(t, []string{first, second, third}, columnIDs(t, a, models.StatusToDo))
	assert.Equal(t, 0, m.UIState.SelectedTicket())
}

func TestModel_MoveAcrossColumns(t *testing.T) {
	m, a := setupModel(t, nil)
	first := createTicket(t, a, "Fix login", models.StatusToDo)
	second := createTicket(t, a, "Add search", models.StatusToDo)
	tested := createTicket(t, a, "Ship it", models.StatusToTest)
	m = loaded(t, m)

	m = pressAndRun(t, m, "L")
	assert.Equal(t, []string{second}, columnIDs(t, a, models.StatusToDo))
	assert.Equal(t, []string{tested, first}, columnIDs(t, a, models.StatusToTest), "moved ticket goes to the end")
	assert.Equal(t, 1, m.UIState.SelectedColumn())
	assert.Equal(t, first, m.selectedTicket().ID)

	m = pressAndRun(t, m, "L")
	m = pressAndRun(t, m, "L")
	assert.Equal(t, []string{first}, columnIDs(t, a, models.StatusDone), "no column right of done")

	m = pressAndRun(t, m, "H")
	assert.Equal(t, []string{tested, first}, columnIDs(t, a, models.StatusToTest))
	assert.Equal(t, first, m.selectedTicket().ID)
}

// ============================================================================
// Create, delete, search
// ============================================================================

func TestModel_CreateTicketInSelectedColumn(t *testing.T) {
	m, a := setupModel(t, nil)
	existing := createTicket(t, a, "Ship it", models.StatusToTest)
	m = loaded(t, m)
	m = press(m, "l")

	m = press(m, "a")
	assert.Equal(t, state.TicketFormMode, m.UIState.Mode())
	require.True(t, m.FormState.Active())

	// the form writes its fields through these
	m.FormState.Title = "Write docs"
	m.FormState.Content = "Explain setup"
	m = pressAndRun(t, m, "ctrl+s")

	assert.Equal(t, state.NormalMode, m.UIState.Mode())
	assert.False(t, m.FormState.Active())
	ids := columnIDs(t, a, models.StatusToTest)
	require.Len(t, ids, 2)
	assert.Equal(t, existing, ids[0])
	assert.Equal(t, ids[1], m.selectedTicket().ID, "cursor lands on the new ticket")

	created, err := a.TicketService.GetTicket(context.Background(), ids[1])
	require.NoError(t, err)
	assert.Equal(t, "Write docs", created.Title)
	assert.Equal(t, "Explain setup", created.Content)

	msg, level := m.NotificationState.Message()
	assert.Contains(t, msg, "Created")
	assert.Equal(t, state.LevelInfo, level)
}

func TestModel_FormKeepsBoardKeys(t *testing.T) {
	m, a := setupModel(t, nil)
	createTicket(t, a, "Fix login", models.StatusToDo)
	m = loaded(t, m)

	m = press(m, "a")
	m = typeText(m, "qdjl")

	assert.Equal(t, state.TicketFormMode, m.UIState.Mode(), "typed keys belong to the form")
	assert.Equal(t, 0, m.UIState.SelectedColumn())
	assert.Len(t, columnIDs(t, a, models.StatusToDo), 1)
}

func TestModel_CreateRejectedShowsError(t *testing.T) {
	m, a := setupModel(t, nil)
	m = loaded(t, m)

	m = press(m, "a")
	m.FormState.Title = "x"
	m.FormState.Content = "too short a title"
	m = pressAndRun(t, m, "ctrl+s")

	_, level := m.NotificationState.Message()
	assert.Equal(t, state.LevelError, level)
	assert.Equal(t, state.NormalMode, m.UIState.Mode())
	assert.Empty(t, columnIDs(t, a, models.StatusToDo))
}

func TestModel_CreateCancelled(t *testing.T) {
	m, a := setupModel(t, nil)
	m = loaded(t, m)

	m = press(m, "a")
	m.FormState.Title = "Write docs"
	m = press(m, "esc")

	assert.Equal(t, state.NormalMode, m.UIState.Mode())
	assert.False(t, m.FormState.Active())
	assert.Empty(t, m.FormState.Title)
	assert.Empty(t, columnIDs(t, a, models.StatusToDo))
}

func TestModel_DeleteAsksFirst(t *testing.T) {
	m, a := setupModel(t, nil)
	first := createTicket(t, a, "Fix login", models.StatusToDo)
	second := createTicket(t, a, "Add search", models.StatusToDo)
	m = loaded(t, m)

	m = press(m, "d")
	assert.Equal(t, state.DeleteConfirmMode, m.UIState.Mode())
	m = press(m, "n")
	assert.Equal(t, state.NormalMode, m.UIState.Mode())
	assert.Equal(t, []string{first, second}, columnIDs(t, a, models.StatusToDo))

	m = press(m, "d")
	m = pressAndRun(t, m, "y")
	assert.Equal(t, []string{second}, columnIDs(t, a, models.StatusToDo))
	assert.Equal(t, second, m.selectedTicket().ID)

	// nothing to delete in an empty column
	m = press(m, "l", "d")
	assert.Equal(t, state.NormalMode, m.UIState.Mode())
}

func TestModel_SearchJumpsToMatch(t *testing.T) {
	m, a := setupModel(t, nil)
	createTicket(t, a, "Fix login", models.StatusToDo)
	deploy := createTicket(t, a, "Deploy api", models.StatusDone)
	m = loaded(t, m)

	m = press(m, "/")
	assert.Equal(t, state.SearchMode, m.UIState.Mode())
	m = typeText(m, "deploy")
	m = pressAndRun(t, m, "enter")

	assert.Equal(t, deploy, m.selectedTicket().ID)
	msg, _ := m.NotificationState.Message()
	assert.Contains(t, msg, "1 match")

	m = press(m, "/")
	m = typeText(m, "nothing")
	m = pressAndRun(t, m, "enter")
	assert.Equal(t, deploy, m.selectedTicket().ID, "cursor stays put without matches")
	_, level := m.NotificationState.Message()
	assert.Equal(t, state.LevelWarning, level)
}

// ============================================================================
// Daemon events
// ============================================================================

func TestModel_RefreshesOnDaemonEvent(t *testing.T) {
	ch := make(chan events.Event, 2)
	m, a := setupModel(t, ch)
	assert.Equal(t, state.Connected, m.Connection)
	// Init would block in listen on the empty channel
	m = run(t, m, m.loadBoard(""))
	assert.Equal(t, 0, m.BoardState.Total())

	// another process adds a ticket
	id := createTicket(t, a, "From elsewhere", models.StatusToTest)
	ch <- events.Event{Type: events.EventTicketCreated, TicketID: id, Status: "to-test"}
	ch <- events.Event{Type: events.EventPing}

	msg := m.listen()()
	refresh, ok := msg.(RefreshMsg)
	require.True(t, ok, "expected RefreshMsg, got %T", msg)
	assert.Equal(t, id, refresh.Event.TicketID)

	m, cmd := update(m, refresh)
	m = run(t, m, cmd)
	assert.Equal(t, 1, m.BoardState.Total())
}

func TestModel_ConnectionLost(t *testing.T) {
	ch := make(chan events.Event)
	m, _ := setupModel(t, ch)
	close(ch)

	msg := m.listen()()
	require.IsType(t, ConnectionLostMsg{}, msg)

	m, _ = update(m, msg)
	assert.Equal(t, state.Disconnected, m.Connection)
	assert.Nil(t, m.listen())
	_, level := m.NotificationState.Message()
	assert.Equal(t, state.LevelWarning, level)
}

func TestModel_QuitsWhenContextEnds(t *testing.T) {
	m, _ := setupModel(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()
	m.Ctx = ctx

	_, cmd := update(m, keyPress("j"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ============================================================================
// View
// ============================================================================

func TestModel_View(t *testing.T) {
	m, a := setupModel(t, nil)
	assert.Equal(t, "Loading...", m.View().Content)

	createTicket(t, a, "Fix login", models.StatusToDo)
	m = loaded(t, m)

	view := m.View()
	assert.True(t, view.AltScreen)
	for _, want := range []string{"ticketboard", "to-do", "to-test", "done", "Fix login", "empty", "offline"} {
		assert.Contains(t, view.Content, want)
	}

	m = press(m, "?")
	assert.Contains(t, m.View().Content, "Press any key to close")
	m = press(m, "x")
	assert.Equal(t, state.NormalMode, m.UIState.Mode())

	m = press(m, "d")
	assert.Contains(t, m.View().Content, "Delete \"Fix login\"?")
	m = press(m, "n")

	m = press(m, "a")
	content := m.View().Content
	assert.Contains(t, content, "New ticket in to-do")
	assert.Contains(t, content, "ctrl+s save")
}
