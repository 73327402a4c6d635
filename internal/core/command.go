package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinChat subscribes the client to a chat's room.
	CommandJoinChat CommandKind = iota
	// CommandLeaveChat unsubscribes the client from a chat's room.
	CommandLeaveChat
	// CommandSetTyping relays a transient typing signal to the room.
	CommandSetTyping
	// CommandMarkRead records and announces a read receipt for a message.
	CommandMarkRead
)

// Command represents an action requested by a client.
type Command struct {
	Kind      CommandKind
	ChatID    string
	MessageID string
	IsTyping  bool
}
