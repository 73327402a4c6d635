package store

import (
	"context"
	"time"
)

// ReadReceipt records that a user has read a message.
// At most one row exists per (MessageID, UserID); re-reads refresh ReadAt.
type ReadReceipt struct {
	MessageID string
	UserID    string
	ReadAt    time.Time
}

// Message is the slice of the product's message table this subsystem reads.
// Messages are created and owned elsewhere; only the message-to-chat
// relationship is consulted here, and it is immutable once created.
type Message struct {
	ID     string
	ChatID string
}

// ReceiptStore handles read-receipt persistence.
type ReceiptStore interface {
	// UpsertReadReceipt inserts a receipt for (messageID, userID) or, if one
	// already exists, overwrites its timestamp (last write wins).
	UpsertReadReceipt(ctx context.Context, messageID, userID string, readAt time.Time) error

	// ChatForMessage resolves the chat owning messageID.
	// Returns found=false (and no error) when the message does not exist.
	ChatForMessage(ctx context.Context, messageID string) (chatID string, found bool, err error)

	// Close closes the underlying database connection.
	Close() error
}
