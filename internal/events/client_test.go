package events

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// Test Helpers
// ============================================================================

// mockDaemon accepts one client at a time, records everything it receives
// and lets the test push messages back.
type mockDaemon struct {
	socketPath string
	listener   net.Listener
	received   chan Message
	conns      chan *json.Encoder
}

func setupMockDaemon(t *testing.T) *mockDaemon {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "test.sock")
	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to create mock daemon listener: %v", err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	d := &mockDaemon{
		socketPath: socketPath,
		listener:   listener,
		received:   make(chan Message, 100),
		conns:      make(chan *json.Encoder, 4),
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			d.conns <- json.NewEncoder(conn)

			go func(c net.Conn) {
				defer func() { _ = c.Close() }()
				decoder := json.NewDecoder(c)
				for {
					var msg Message
					if err := decoder.Decode(&msg); err != nil {
						return
					}
					d.received <- msg
				}
			}(conn)
		}
	}()

	return d
}

func (d *mockDaemon) next(t *testing.T) Message {
	t.Helper()
	select {
	case msg := <-d.received:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client message")
		return Message{}
	}
}

func (d *mockDaemon) encoder(t *testing.T) *json.Encoder {
	t.Helper()
	select {
	case enc := <-d.conns:
		return enc
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client connection")
		return nil
	}
}

func connectedClient(t *testing.T, d *mockDaemon) *Client {
	t.Helper()
	client, err := NewClient(d.socketPath)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return client
}

// ============================================================================
// Client Creation Tests
// ============================================================================

func TestNewClient(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "ticketboard.sock")

	client, err := NewClient(socketPath)
	if err != nil {
		t.Fatalf("Expected NewClient to succeed, got error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if client.socketPath != socketPath {
		t.Errorf("Expected socket path %s, got %s", socketPath, client.socketPath)
	}
	if cap(client.eventQueue) != DefaultQueueSize {
		t.Errorf("Expected queue size %d, got %d", DefaultQueueSize, cap(client.eventQueue))
	}

	if _, err := NewClient(""); err == nil {
		t.Error("Expected error for empty socket path")
	}
}

func TestNewClient_CustomQueueSize(t *testing.T) {
	t.Setenv("TICKETBOARD_EVENT_QUEUE", "7")

	client, err := NewClient(filepath.Join(t.TempDir(), "ticketboard.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer func() { _ = client.Close() }()

	if cap(client.eventQueue) != 7 {
		t.Errorf("Expected queue size 7, got %d", cap(client.eventQueue))
	}
}

// ============================================================================
// Connection Tests
// ============================================================================

func TestConnect_SendsSubscription(t *testing.T) {
	d := setupMockDaemon(t)
	connectedClient(t, d)

	msg := d.next(t)
	if msg.Type != "subscribe" || msg.Subscribe == nil || msg.Subscribe.Status != "" {
		t.Errorf("Expected whole-board subscription, got %+v", msg)
	}
	if msg.Version != ProtocolVersion {
		t.Errorf("Expected protocol version %d, got %d", ProtocolVersion, msg.Version)
	}
}

func TestConnect_NoServer(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "nonexistent.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := client.Connect(ctx); err == nil {
		t.Error("Expected Connect to fail when server doesn't exist")
	}
}

func TestConnect_AfterClose(t *testing.T) {
	d := setupMockDaemon(t)
	client, err := NewClient(d.socketPath)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	_ = client.Close()

	if err := client.Connect(context.Background()); err == nil {
		t.Error("Expected Connect to fail on a closed client")
	}
}

// ============================================================================
// Subscription Tests
// ============================================================================

func TestSubscribe_BeforeConnect(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Subscribe("done"); err == nil {
		t.Error("Expected Subscribe to fail before Connect")
	}
	// the filter is still remembered for the next connect
	if client.status != "done" {
		t.Errorf("Expected status filter to be stored, got %q", client.status)
	}
}

func TestSubscribe_AfterConnect(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)
	d.next(t) // initial subscription

	if err := client.Subscribe("to-test"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	msg := d.next(t)
	if msg.Type != "subscribe" || msg.Subscribe == nil || msg.Subscribe.Status != "to-test" {
		t.Errorf("Expected to-test subscription, got %+v", msg)
	}
}

// ============================================================================
// Send Tests
// ============================================================================

func TestSendEvent_ForwardsEveryEvent(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)
	d.next(t)

	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		if err := client.SendEvent(Event{Type: EventTicketCreated, TicketID: id, Status: "to-do"}); err != nil {
			t.Fatalf("SendEvent failed: %v", err)
		}
	}

	for _, id := range ids {
		msg := d.next(t)
		if msg.Type != "event" || msg.Event == nil || msg.Event.TicketID != id {
			t.Errorf("Expected event for %s, got %+v", id, msg)
		}
	}
}

func TestSendEvent_QueueFull(t *testing.T) {
	t.Setenv("TICKETBOARD_EVENT_QUEUE", "2")

	// never connected, so nothing drains the queue
	client, err := NewClient(filepath.Join(t.TempDir(), "test.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer func() { _ = client.Close() }()

	for i := 0; i < 2; i++ {
		if err := client.SendEvent(Event{Type: EventTicketUpdated}); err != nil {
			t.Fatalf("SendEvent %d failed: %v", i, err)
		}
	}
	err = client.SendEvent(Event{Type: EventTicketUpdated})
	if err == nil || !strings.Contains(err.Error(), "queue full") {
		t.Errorf("Expected queue full error, got %v", err)
	}
}

func TestSendEvent_AfterClose(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	_ = client.Close()

	if err := client.SendEvent(Event{Type: EventTicketCreated}); err == nil {
		t.Error("Expected SendEvent to fail after Close")
	}
}

// ============================================================================
// Listen Tests
// ============================================================================

func TestListen_DeliversInSequenceOrder(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)
	enc := d.encoder(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	for _, seq := range []int64{1, 2, 2, 1, 3} {
		_ = enc.Encode(Message{Type: "event", Event: &Event{Type: EventTicketMoved, SequenceID: seq}})
	}

	for _, want := range []int64{1, 2, 3} {
		select {
		case ev := <-ch:
			if ev.SequenceID != want {
				t.Errorf("Expected sequence %d, got %d", want, ev.SequenceID)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for sequence %d", want)
		}
	}
}

func TestListen_AnswersPing(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)
	enc := d.encoder(t)
	d.next(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := client.Listen(ctx); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	_ = enc.Encode(Message{Type: "ping"})

	msg := d.next(t)
	if msg.Type != "pong" || msg.Event == nil || msg.Event.Type != EventPong {
		t.Errorf("Expected pong, got %+v", msg)
	}
}

func TestListen_BeforeConnect(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer func() { _ = client.Close() }()

	if _, err := client.Listen(context.Background()); err == nil {
		t.Error("Expected Listen to fail before Connect")
	}
}

func TestListen_ChannelClosesOnClose(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)

	ch, err := client.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	_ = client.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Expected channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed after Close")
	}
}

// ============================================================================
// Close Tests
// ============================================================================

func TestClose_BeforeConnect(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- client.Close() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close hung on a client that never connected")
	}
}

func TestClose_FlushesQueuedEvents(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)
	d.next(t)

	for i := 0; i < 5; i++ {
		_ = client.SendEvent(Event{Type: EventTicketDeleted, SequenceID: int64(i)})
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if msg := d.next(t); msg.Type != "event" {
			t.Errorf("Expected event, got %+v", msg)
		}
	}
}

func TestClose_Idempotent(t *testing.T) {
	d := setupMockDaemon(t)
	client := connectedClient(t, d)

	if err := client.Close(); err != nil {
		t.Errorf("First Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}
