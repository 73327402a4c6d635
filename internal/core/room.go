package core

import "github.com/planhub/chat-server/internal/metrics"

// RoomKey derives the broadcast-group key for a chat.
func RoomKey(chatID string) string {
	return "chat_" + chatID
}

// Room groups clients subscribed to the same chat.
type Room struct {
	Key     string
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom(key string) *Room {
	return &Room{
		Key:     key,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to all clients in the room, best-effort.
// A non-nil exclude skips that client (typing and membership notices never
// reach their own sender).
func (r *Room) Broadcast(event *Event, exclude *Client) {
	metrics.BroadcastsTotal.WithLabelValues(event.Kind.String()).Inc()
	for client := range r.clients {
		if client == exclude {
			continue
		}
		client.send(event)
	}
}

// Contains reports whether the client is a member of the room.
func (r *Room) Contains(c *Client) bool {
	_, ok := r.clients[c]
	return ok
}

// Size returns the current number of members.
func (r *Room) Size() int {
	return len(r.clients)
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}
