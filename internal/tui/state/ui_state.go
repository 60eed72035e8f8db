package state

// Mode represents the current interaction mode of the board screen.
// Each mode determines which keys are active and what is drawn on top of the board.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	TicketFormMode                // Filling in the new ticket form
	SearchMode                    // Typing a title search
	DeleteConfirmMode             // Confirming ticket deletion
	HelpMode                      // Displaying the key bindings
)

// UIState manages cursor position, terminal size and the current mode
type UIState struct {
	selectedColumn int
	selectedTicket int
	width          int
	height         int
	mode           Mode
}

// NewUIState creates a UIState in NormalMode with the cursor on the first ticket
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

func (s *UIState) SelectedColumn() int { return s.selectedColumn }
func (s *UIState) SelectedTicket() int { return s.selectedTicket }
func (s *UIState) Width() int          { return s.width }
func (s *UIState) Height() int         { return s.height }
func (s *UIState) Mode() Mode          { return s.mode }

// SetMode switches the interaction mode
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// SetSize records the terminal dimensions
func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetSelection moves the cursor without bounds checks; call Clamp afterwards
func (s *UIState) SetSelection(column, ticket int) {
	s.selectedColumn = column
	s.selectedTicket = ticket
}

// Clamp keeps the cursor inside the board. columns is the number of
// columns and ticketsIn reports the length of a column.
func (s *UIState) Clamp(columns int, ticketsIn func(col int) int) {
	if columns == 0 {
		s.selectedColumn, s.selectedTicket = 0, 0
		return
	}
	s.selectedColumn = clamp(s.selectedColumn, 0, columns-1)

	n := ticketsIn(s.selectedColumn)
	if n == 0 {
		s.selectedTicket = 0
		return
	}
	s.selectedTicket = clamp(s.selectedTicket, 0, n-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
