package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultQueueSize is the number of events buffered before SendEvent fails
const DefaultQueueSize = 100

// Client is a connection to the ticketboard daemon. It forwards board events
// from this process and delivers events published by other processes.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	eventQueue chan Event
	closed     bool

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	// column filter sent on every (re)connect, "" = whole board
	status string

	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc

	senderOnce sync.Once
	senderDone chan struct{}
}

// NewClient creates a client for the socket at socketPath but does not connect.
// TICKETBOARD_EVENT_QUEUE overrides the send queue size.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, errors.New("socket path cannot be empty")
	}

	queueSize := DefaultQueueSize
	if envVal := os.Getenv("TICKETBOARD_EVENT_QUEUE"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			queueSize = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		socketPath: socketPath,
		eventQueue: make(chan Event, queueSize),
		maxRetries: 5,
		baseDelay:  time.Second,
		ctx:        ctx,
		cancel:     cancel,
		senderDone: make(chan struct{}),
	}, nil
}

// Connect dials the daemon and sends the current subscription
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.New("client is closed")
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)
	c.lastSequence = 0

	if err := c.encoder.Encode(subscribeMessage(c.status)); err != nil {
		_ = conn.Close()
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	c.senderOnce.Do(func() { go c.runSender() })
	return nil
}

func subscribeMessage(status string) Message {
	return Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{Status: status},
	}
}

// SendEvent queues an event for the daemon. It never blocks; a full queue
// is reported as an error.
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("client is closed")
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return errors.New("event queue full")
	}
}

// runSender forwards queued events one by one until the queue is closed.
// Events still queued at Close are flushed before it returns.
func (c *Client) runSender() {
	defer close(c.senderDone)

	for event := range c.eventQueue {
		if err := c.sendToSocket(event); err != nil && !isConnectionError(err) {
			slog.Warn("failed to forward board event", "event_type", event.Type, "error", err)
		}
	}
}

func (c *Client) sendToSocket(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("not connected to daemon")
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	msgType := "event"
	if event.Type == EventPong {
		msgType = "pong"
	}
	return c.encoder.Encode(Message{Version: ProtocolVersion, Type: msgType, Event: &event})
}

// Listen delivers events from the daemon on the returned channel and
// reconnects when the connection drops. The channel is closed when ctx is
// done or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	c.mu.Lock()
	connected := c.conn != nil
	c.mu.Unlock()
	if !connected {
		return nil, errors.New("not connected to daemon")
	}

	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		err := c.readEvents(ctx, eventChan)
		if ctx.Err() != nil || c.isClosed() {
			return
		}

		slog.Info("daemon connection lost, reconnecting", "error", err)
		if !c.reconnect(ctx) {
			slog.Warn("giving up on daemon connection", "attempts", c.maxRetries)
			return
		}
	}
}

func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return errors.New("connection closed")
		}
		// the daemon pings every 30s
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil || !c.advance(msg.Event.SequenceID) {
				continue
			}
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case "ping":
			if err := c.sendToSocket(Event{Type: EventPong, Timestamp: time.Now()}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to answer ping", "error", err)
			}
		}
	}
}

// advance records seq and reports whether it is newer than the last one seen
func (c *Client) advance(seq int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.lastSequence {
		return false
	}
	c.lastSequence = seq
	return true
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "not connected to daemon")
}

// reconnect retries Connect with exponential backoff: 1s, 2s, 4s, ...
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
		}

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		c.mu.Unlock()

		if err := c.Connect(ctx); err == nil {
			slog.Info("reconnected to daemon", "attempt", i+1)
			return true
		}
		slog.Debug("reconnect attempt failed", "attempt", i+1, "max_retries", c.maxRetries, "retry_in", delay*2)
		delay *= 2
	}
	return false
}

// Subscribe narrows delivered events to one column. An empty status
// subscribes to the whole board. The filter survives reconnects.
func (c *Client) Subscribe(status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
	if c.conn == nil {
		return errors.New("not connected to daemon")
	}
	return c.encoder.Encode(subscribeMessage(status))
}

// Close flushes queued events, stops the sender and closes the connection.
// It is safe to call more than once and on a client that never connected.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	c.mu.Unlock()

	c.cancel()

	// starts a sender if none ran so senderDone is always closed
	c.senderOnce.Do(func() { go c.runSender() })
	<-c.senderDone

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
