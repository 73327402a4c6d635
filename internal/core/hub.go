package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/planhub/chat-server/internal/store"
)

// Hub dispatches client commands to the chat handlers and owns room
// membership. A single Run goroutine mutates the rooms map and every
// client's room set, so no lock guards them; all other goroutines talk to
// the hub through its channels.
type Hub struct {
	store        store.ReceiptStore
	log          zerolog.Logger
	storeTimeout time.Duration

	clients map[*Client]struct{}
	rooms   map[string]*Room

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub creates a hub backed by the given receipt store.
// A nil logger disables logging; a zero storeTimeout falls back to 3s.
func NewHub(st store.ReceiptStore, logger *zerolog.Logger, storeTimeout time.Duration) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if storeTimeout <= 0 {
		storeTimeout = 3 * time.Second
	}
	return &Hub{
		store:        st,
		log:          *logger,
		storeTimeout: storeTimeout,
		clients:      make(map[*Client]struct{}),
		rooms:        make(map[string]*Room),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		commands:     make(chan clientCommand),
	}
}

// RegisterClient hands a connection to the hub. The hub starts pumping the
// client's commands until its Commands channel is closed.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a disconnected client, removing it from every
// room it joined and notifying the remaining members.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
// It is the only goroutine that touches membership state.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.detach(c)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the hub's single command stream,
// preserving that client's arrival order.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes a command to its handler. A handler failure is contained
// here: it never reaches other connections and never kills this one.
func (h *Hub) dispatch(c *Client, cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("client_id", c.ID).Msg("handler panic recovered")
		}
	}()

	if _, ok := h.clients[c]; !ok {
		return
	}

	switch cmd.Kind {
	case CommandJoinChat:
		h.handleJoin(c, cmd.ChatID)
	case CommandLeaveChat:
		h.handleLeave(c, cmd.ChatID)
	case CommandSetTyping:
		h.handleTyping(c, cmd.ChatID, cmd.IsTyping)
	case CommandMarkRead:
		h.handleMarkRead(c, cmd.MessageID)
	default:
		c.send(errorEvent(ErrCodeBadRequest, "unknown command"))
	}
}

func (h *Hub) handleJoin(c *Client, chatID string) {
	if chatID == "" {
		c.send(errorEvent(ErrCodeBadRequest, "chatId is required"))
		return
	}

	key := RoomKey(chatID)
	room := h.rooms[key]
	if room == nil {
		room = NewRoom(key)
		h.rooms[key] = room
	}

	// Joining twice is a state no-op, but the ack and the notice still go out.
	room.AddClient(c)
	c.rooms[chatID] = struct{}{}

	c.send(&Event{Kind: EventJoined, ChatID: chatID})
	room.Broadcast(&Event{
		Kind:     EventUserJoined,
		ChatID:   chatID,
		UserID:   c.UserID(),
		UserName: c.DisplayName(),
	}, c)

	h.log.Info().Str("client_id", c.ID).Str("user_id", c.UserID()).Str("chat_id", chatID).Msg("user joined chat")
}

func (h *Hub) handleLeave(c *Client, chatID string) {
	if chatID == "" {
		c.send(errorEvent(ErrCodeBadRequest, "chatId is required"))
		return
	}

	key := RoomKey(chatID)
	if room := h.rooms[key]; room != nil && room.RemoveClient(c) {
		delete(c.rooms, chatID)
		room.Broadcast(&Event{
			Kind:     EventUserLeft,
			ChatID:   chatID,
			UserID:   c.UserID(),
			UserName: c.DisplayName(),
		}, c)
		if room.Empty() {
			delete(h.rooms, key)
		}
	}

	c.send(&Event{Kind: EventLeft, ChatID: chatID})

	h.log.Info().Str("client_id", c.ID).Str("user_id", c.UserID()).Str("chat_id", chatID).Msg("user left chat")
}

// detach removes a disconnected client from every room it belongs to.
// This is the transport-driven counterpart of an explicit leave.
func (h *Hub) detach(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)

	for chatID := range c.rooms {
		key := RoomKey(chatID)
		room := h.rooms[key]
		if room == nil {
			continue
		}
		if room.RemoveClient(c) {
			room.Broadcast(&Event{
				Kind:     EventUserLeft,
				ChatID:   chatID,
				UserID:   c.UserID(),
				UserName: c.DisplayName(),
			}, c)
		}
		if room.Empty() {
			delete(h.rooms, key)
		}
	}
	c.rooms = make(map[string]struct{})

	h.log.Debug().Str("client_id", c.ID).Str("user_id", c.UserID()).Msg("client detached")
}
