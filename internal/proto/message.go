package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin     = "join"
	InboundTypeLeave    = "leave"
	InboundTypeTyping   = "typing"
	InboundTypeMarkRead = "mark_read"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// JoinData requests to join or leave a specific chat.
type JoinData struct {
	ChatID string `json:"chatId"`
}

// TypingData signals that the sender started or stopped composing.
type TypingData struct {
	ChatID   string `json:"chatId"`
	IsTyping bool   `json:"isTyping"`
}

// MarkReadData marks a message as read by the sender.
type MarkReadData struct {
	MessageID string `json:"messageId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventJoined acknowledges a join to the caller.
type EventJoined struct {
	Success bool   `json:"success"`
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// EventLeft acknowledges a leave to the caller.
type EventLeft struct {
	Success bool   `json:"success"`
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// EventUserJoined notifies room members that a user joined a chat.
type EventUserJoined struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	ChatID   string `json:"chatId"`
}

// EventUserLeft notifies room members that a user left a chat.
type EventUserLeft struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	ChatID   string `json:"chatId"`
}

// EventTyping relays a typing signal to room members.
type EventTyping struct {
	ChatID     string `json:"chatId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	IsTyping   bool   `json:"isTyping"`
}

// EventMessageRead announces a read receipt to the full room.
// ReadAt carries an RFC 3339 instant with nanosecond precision.
type EventMessageRead struct {
	MessageID  string `json:"messageId"`
	ReadBy     string `json:"readBy"`
	ReadByName string `json:"readByName"`
	ReadAt     string `json:"readAt"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code,omitempty"`
	Msg  string `json:"message"`
}
