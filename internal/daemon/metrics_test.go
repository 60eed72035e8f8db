package daemon

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	snap := m.GetSnapshot()
	if snap.EventsReceived != 0 || snap.EventsBroadcast != 0 || snap.MessagesSent != 0 ||
		snap.MessagesDropped != 0 || snap.ConnectedClients != 0 {
		t.Errorf("Expected zeroed counters, got %+v", snap)
	}
	if time.Since(m.StartTime) > time.Second {
		t.Errorf("Expected StartTime to be recent, got %v", m.StartTime)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncEventsReceived()
	m.IncEventsBroadcast()
	m.IncEventsBroadcast()
	for i := 0; i < 3; i++ {
		m.IncMessagesSent()
	}
	m.IncMessagesDropped()
	m.SetConnectedClients(4)
	m.SetConnectedClients(2)

	snap := m.GetSnapshot()
	if snap.EventsReceived != 1 {
		t.Errorf("Expected 1 received, got %d", snap.EventsReceived)
	}
	if snap.EventsBroadcast != 2 {
		t.Errorf("Expected 2 broadcast, got %d", snap.EventsBroadcast)
	}
	if snap.MessagesSent != 3 {
		t.Errorf("Expected 3 sent, got %d", snap.MessagesSent)
	}
	if snap.MessagesDropped != 1 {
		t.Errorf("Expected 1 dropped, got %d", snap.MessagesDropped)
	}
	if snap.ConnectedClients != 2 {
		t.Errorf("Expected 2 clients, got %d", snap.ConnectedClients)
	}
	if snap.Uptime == "" {
		t.Error("Expected uptime to be set")
	}
}

func TestMetricsSnapshot_IsImmutable(t *testing.T) {
	m := NewMetrics()
	m.IncMessagesSent()

	snap := m.GetSnapshot()
	m.IncMessagesSent()

	if snap.MessagesSent != 1 {
		t.Errorf("Snapshot changed after later increments: %d", snap.MessagesSent)
	}
}

func TestMetricsSnapshot_LogValue(t *testing.T) {
	snap := NewMetrics().GetSnapshot()
	attrs := snap.LogValue().Group()
	if len(attrs) != 6 {
		t.Errorf("Expected 6 attributes, got %d", len(attrs))
	}
}

func TestMetricsConcurrency(t *testing.T) {
	m := NewMetrics()
	numGoroutines := 50
	opsPerGoroutine := 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(val int32) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				m.IncEventsReceived()
				m.IncEventsBroadcast()
				m.IncMessagesSent()
				m.IncMessagesDropped()
				m.SetConnectedClients(val)
				_ = m.GetSnapshot()
			}
		}(int32(i))
	}
	wg.Wait()

	expected := int64(numGoroutines * opsPerGoroutine)
	snap := m.GetSnapshot()
	if snap.EventsReceived != expected || snap.EventsBroadcast != expected ||
		snap.MessagesSent != expected || snap.MessagesDropped != expected {
		t.Errorf("Expected every counter at %d, got %+v", expected, snap)
	}
	if snap.ConnectedClients < 0 || snap.ConnectedClients >= int32(numGoroutines) {
		t.Errorf("ConnectedClients out of range: %d", snap.ConnectedClients)
	}
}
