package state

import "github.com/thenoetrevino/ticketboard/internal/models"

// BoardState holds the ordered columns as last read from the store
type BoardState struct {
	columns map[models.Status][]*models.Ticket
}

// NewBoardState creates an empty board
func NewBoardState() *BoardState {
	return &BoardState{columns: map[models.Status][]*models.Ticket{}}
}

// SetColumns replaces the board contents
func (b *BoardState) SetColumns(columns map[models.Status][]*models.Ticket) {
	if columns == nil {
		columns = map[models.Status][]*models.Ticket{}
	}
	b.columns = columns
}

// Column returns the tickets of the column at index i in board order
func (b *BoardState) Column(i int) []*models.Ticket {
	if i < 0 || i >= len(models.Statuses) {
		return nil
	}
	return b.columns[models.Statuses[i]]
}

// Len returns the number of tickets in the column at index i
func (b *BoardState) Len(i int) int {
	return len(b.Column(i))
}

// Ticket returns the ticket at (col, row), or nil
func (b *BoardState) Ticket(col, row int) *models.Ticket {
	tickets := b.Column(col)
	if row < 0 || row >= len(tickets) {
		return nil
	}
	return tickets[row]
}

// Locate finds a ticket by ID and returns its column and row
func (b *BoardState) Locate(id string) (col, row int, ok bool) {
	for c, st := range models.Statuses {
		for r, t := range b.columns[st] {
			if t.ID == id {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

// Total counts every ticket on the board
func (b *BoardState) Total() int {
	n := 0
	for _, tickets := range b.columns {
		n += len(tickets)
	}
	return n
}
