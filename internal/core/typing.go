package core

// handleTyping relays a transient typing signal to every member of the
// room except the sender. Nothing is retained and nothing is acknowledged;
// a missed signal is invisible to users, so internal trouble on this path
// is logged and swallowed.
func (h *Hub) handleTyping(c *Client, chatID string, isTyping bool) {
	if chatID == "" {
		c.send(errorEvent(ErrCodeBadRequest, "chatId is required"))
		return
	}
	if c.Identity == nil {
		c.send(errorEvent(ErrCodeUnauthorized, "authentication required"))
		return
	}

	room := h.rooms[RoomKey(chatID)]
	if room == nil {
		// Nobody to notify.
		return
	}

	room.Broadcast(&Event{
		Kind:     EventTyping,
		ChatID:   chatID,
		UserID:   c.Identity.UserID,
		UserName: c.Identity.Name(),
		IsTyping: isTyping,
	}, c)

	h.log.Debug().Str("user_id", c.Identity.UserID).Str("chat_id", chatID).Bool("is_typing", isTyping).Msg("typing signal")
}
