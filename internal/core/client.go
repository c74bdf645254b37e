package core

import "sync/atomic"

const eventBuffer = 32

// Client is one live connection as seen by the core layer. The core owns
// this record; nothing is attached to the transport object.
//
// name and room are written only by the connection's own read goroutine
// (joins and room resolution happen there), so they need no lock.
type Client struct {
	ID     string
	Events chan *Event

	name   string
	room   string
	closed atomic.Bool
}

// NewClient constructs a client with a buffered outbound event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, eventBuffer),
	}
}

// MarkClosed flags the client as gone so in-flight broadcasts skip it.
// The Events channel is never closed; the write loop exits via its context.
func (c *Client) MarkClosed() {
	c.closed.Store(true)
}

// send delivers an event without blocking. It reports false when the client
// is closed or its buffer is full; the caller decides whether that matters.
func (c *Client) send(ev *Event) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
