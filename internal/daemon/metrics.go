package daemon

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	EventsReceived   atomic.Int64
	EventsBroadcast  atomic.Int64
	MessagesSent     atomic.Int64
	MessagesDropped  atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsReceived counts an event published by a client
func (m *Metrics) IncEventsReceived() {
	m.EventsReceived.Add(1)
}

// IncEventsBroadcast counts an event that was sequenced and fanned out
func (m *Metrics) IncEventsBroadcast() {
	m.EventsBroadcast.Add(1)
}

// IncMessagesSent counts a message queued for one client
func (m *Metrics) IncMessagesSent() {
	m.MessagesSent.Add(1)
}

// IncMessagesDropped counts a message skipped because a queue was full
func (m *Metrics) IncMessagesDropped() {
	m.MessagesDropped.Add(1)
}

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	EventsReceived   int64     `json:"events_received"`
	EventsBroadcast  int64     `json:"events_broadcast"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesDropped  int64     `json:"messages_dropped"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived:   m.EventsReceived.Load(),
		EventsBroadcast:  m.EventsBroadcast.Load(),
		MessagesSent:     m.MessagesSent.Load(),
		MessagesDropped:  m.MessagesDropped.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}

// LogValue lets a snapshot be logged as a single slog attribute group
func (s MetricsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("events_received", s.EventsReceived),
		slog.Int64("events_broadcast", s.EventsBroadcast),
		slog.Int64("messages_sent", s.MessagesSent),
		slog.Int64("messages_dropped", s.MessagesDropped),
		slog.Int("connected_clients", int(s.ConnectedClients)),
		slog.String("uptime", s.Uptime),
	)
}
