package core

import "github.com/planhub/chat-server/internal/metrics"

// Client is one live real-time connection as seen by the core layer.
// Identity is nil for connections that never authenticated; handlers that
// need a user must check it explicitly.
type Client struct {
	ID       string
	Identity *Identity
	Commands chan *Command
	Events   chan *Event

	// rooms is the set of chat ids this client has joined.
	// Owned by the hub goroutine; never touched elsewhere.
	rooms map[string]struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string, identity *Identity) *Client {
	return &Client{
		ID:       id,
		Identity: identity,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
		rooms:    make(map[string]struct{}),
	}
}

// UserID returns the authenticated user id, or "" when no identity is attached.
func (c *Client) UserID() string {
	if c.Identity == nil {
		return ""
	}
	return c.Identity.UserID
}

// DisplayName returns the attached display name or the sentinel.
func (c *Client) DisplayName() string {
	return c.Identity.Name()
}

// send delivers an event to the client, dropping it if the client's
// buffer is full. Slow consumers lose events rather than stall the hub.
func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
		metrics.DroppedEventsTotal.Inc()
	}
}
