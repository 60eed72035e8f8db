package models

import (
	"fmt"
	"strings"
	"time"
)

// Status is the column a ticket lives in. The set of statuses is closed.
type Status string

const (
	StatusToDo   Status = "to-do"
	StatusToTest Status = "to-test"
	StatusDone   Status = "done"
)

// Statuses lists every column in board order (left to right)
var Statuses = []Status{StatusToDo, StatusToTest, StatusDone}

// statusAliases maps accepted spellings to the canonical status
var statusAliases = map[string]Status{
	"to-do":   StatusToDo,
	"todo":    StatusToDo,
	"to_do":   StatusToDo,
	"to-test": StatusToTest,
	"totest":  StatusToTest,
	"to_test": StatusToTest,
	"done":    StatusDone,
}

// ParseStatus converts user input into a Status.
// Matching is case-insensitive and accepts "toDo" / "toTest" style spellings.
func ParseStatus(s string) (Status, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("invalid status '%s' (must be: to-do, to-test, done)", s)
	}
	return status, nil
}

// Valid reports whether s is one of the board's columns
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Ticket is a single card on the board.
// Within a column tickets form a doubly-linked list through PrevID and NextID.
type Ticket struct {
	ID        string    `json:"id" yaml:"id" cbor:"1,keyasint"`
	Title     string    `json:"title" yaml:"title" cbor:"2,keyasint"`
	Content   string    `json:"content" yaml:"content" cbor:"3,keyasint"`
	Status    Status    `json:"status" yaml:"status" cbor:"4,keyasint"`
	NextID    *string   `json:"next_id" yaml:"next_id" cbor:"5,keyasint"` // nil for the column tail
	PrevID    *string   `json:"prev_id" yaml:"prev_id" cbor:"6,keyasint"` // nil for the column head
	CreatedAt time.Time `json:"created_at" yaml:"created_at" cbor:"7,keyasint"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at" cbor:"8,keyasint"`
}

// GetID returns the ticket ID. Used by the CLI quiet output mode.
func (t *Ticket) GetID() string {
	return t.ID
}

// IsHead reports whether the ticket has no predecessor in its column
func (t *Ticket) IsHead() bool {
	return t.PrevID == nil
}

// IsTail reports whether the ticket has no successor in its column
func (t *Ticket) IsTail() bool {
	return t.NextID == nil
}

// Clone returns a deep copy so link rewrites never alias caller state
func (t *Ticket) Clone() *Ticket {
	c := *t
	c.NextID = CopyID(t.NextID)
	c.PrevID = CopyID(t.PrevID)
	return &c
}

// CopyID copies an optional ticket reference
func CopyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// SameID compares two optional ticket references
func SameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ColumnCount is the number of tickets found in one column
type ColumnCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// BoardReport is the result of walking every column of the board
type BoardReport struct {
	Columns []ColumnCount `json:"columns"`
	Total   int           `json:"total"`
	Healthy bool          `json:"healthy"`
	Issues  []string      `json:"issues,omitempty"`
	Digest  string        `json:"digest,omitempty"`
}
