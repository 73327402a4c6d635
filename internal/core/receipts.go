package core

import (
	"context"
	"time"
)

// handleMarkRead records a read receipt and announces it to the owning
// chat's room. The receipt is persisted first; if the message cannot be
// resolved to a chat afterwards the persisted receipt stands and the
// broadcast is quietly skipped. Re-reads refresh the stored timestamp and
// produce a fresh broadcast each time, deliberately without deduplication.
func (h *Hub) handleMarkRead(c *Client, messageID string) {
	if messageID == "" {
		c.send(errorEvent(ErrCodeBadRequest, "messageId is required"))
		return
	}
	if c.Identity == nil {
		c.send(errorEvent(ErrCodeUnauthorized, "authentication required"))
		return
	}
	if h.store == nil {
		c.send(errorEvent(ErrCodeInternal, "failed to mark message as read"))
		return
	}

	userID := c.Identity.UserID
	readAt := time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), h.storeTimeout)
	defer cancel()

	if err := h.store.UpsertReadReceipt(ctx, messageID, userID, readAt); err != nil {
		h.log.Error().Err(err).Str("message_id", messageID).Str("user_id", userID).Msg("persist read receipt")
		c.send(errorEvent(ErrCodeInternal, "failed to mark message as read"))
		return
	}

	chatID, found, err := h.store.ChatForMessage(ctx, messageID)
	if err != nil {
		h.log.Error().Err(err).Str("message_id", messageID).Msg("resolve chat for message")
		c.send(errorEvent(ErrCodeInternal, "failed to mark message as read"))
		return
	}
	if !found {
		// Receipt persisted, nothing to announce.
		h.log.Debug().Str("message_id", messageID).Str("user_id", userID).Msg("read receipt for unknown message")
		return
	}

	room := h.rooms[RoomKey(chatID)]
	if room == nil {
		return
	}

	// The full room hears about the receipt, reader included.
	room.Broadcast(&Event{
		Kind:   EventMessageRead,
		ChatID: chatID,
		Receipt: &ReceiptEvent{
			MessageID:  messageID,
			ReadBy:     userID,
			ReadByName: c.Identity.Name(),
			ReadAt:     readAt,
		},
	}, nil)
}
