package events

import "time"

// ProtocolVersion is bumped whenever the wire format changes
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
	EventTicketMoved   EventType = "ticket_moved"
	EventBoardImported EventType = "board_imported"
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
)

// Event represents a board change notification
type Event struct {
	Type       EventType `json:"type"`
	TicketID   string    `json:"ticket_id,omitempty"`
	Status     string    `json:"status,omitempty"`      // column the ticket is in after the change
	FromStatus string    `json:"from_status,omitempty"` // set on cross-column moves
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // assigned by the daemon, monotonically increasing
}

// Touches reports whether the event affects the given column.
// An empty status matches everything.
func (e Event) Touches(status string) bool {
	if status == "" || e.Status == "" {
		return true
	}
	return e.Status == status || e.FromStatus == status
}

// SubscribeMessage is sent by clients to subscribe to updates of one column
type SubscribeMessage struct {
	Status string `json:"status,omitempty"` // "" = whole board
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version   int               `json:"version,omitempty"`
	Type      string            `json:"type"` // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}
