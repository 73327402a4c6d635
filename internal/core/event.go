package core

import "time"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventJoined acknowledges a join to the caller.
	EventJoined EventKind = iota
	// EventLeft acknowledges a leave to the caller.
	EventLeft
	// EventUserJoined notifies room members that a user joined.
	EventUserJoined
	// EventUserLeft notifies room members that a user left.
	EventUserLeft
	// EventTyping relays a typing signal to room members.
	EventTyping
	// EventMessageRead announces a read receipt to the full room.
	EventMessageRead
	// EventError notifies the caller about a rejected or failed request.
	EventError
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJoined:
		return "joined"
	case EventLeft:
		return "left"
	case EventUserJoined:
		return "user_joined"
	case EventUserLeft:
		return "user_left"
	case EventTyping:
		return "typing"
	case EventMessageRead:
		return "message_read"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	ChatID   string
	UserID   string
	UserName string
	IsTyping bool
	Receipt  *ReceiptEvent
	Error    *CoreError
}

// ReceiptEvent holds data specific to read-receipt announcements.
type ReceiptEvent struct {
	MessageID  string
	ReadBy     string
	ReadByName string
	ReadAt     time.Time
}
