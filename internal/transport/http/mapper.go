package http

import (
	"encoding/json"
	"time"

	"github.com/planhub/chat-server/internal/core"
	"github.com/planhub/chat-server/internal/proto"
)

// inboundToCommand maps a client event to a core command.
// Requests missing a required identifier are rejected here, before any
// state is touched; the caller gets exactly one error event.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.ChatID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "chatId is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandJoinChat,
			ChatID: join.ChatID,
		}, nil, nil
	case proto.InboundTypeLeave:
		var leave proto.JoinData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, nil, err
		}
		if leave.ChatID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "chatId is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandLeaveChat,
			ChatID: leave.ChatID,
		}, nil, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		if typing.ChatID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "chatId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandSetTyping,
			ChatID:   typing.ChatID,
			IsTyping: typing.IsTyping,
		}, nil, nil
	case proto.InboundTypeMarkRead:
		var mark proto.MarkReadData
		if err := json.Unmarshal(inbound.Data, &mark); err != nil {
			return nil, nil, err
		}
		if mark.MessageID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "messageId is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandMarkRead,
			MessageID: mark.MessageID,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: event.Kind.String(),
			Data: proto.EventJoined{
				Success: true,
				ChatID:  event.ChatID,
				Message: "joined chat",
			},
		}
	case core.EventLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: event.Kind.String(),
			Data: proto.EventLeft{
				Success: true,
				ChatID:  event.ChatID,
				Message: "left chat",
			},
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: event.Kind.String(),
			Data: proto.EventUserJoined{
				UserID:   event.UserID,
				UserName: event.UserName,
				ChatID:   event.ChatID,
			},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: event.Kind.String(),
			Data: proto.EventUserLeft{
				UserID:   event.UserID,
				UserName: event.UserName,
				ChatID:   event.ChatID,
			},
		}
	case core.EventTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: event.Kind.String(),
			Data: proto.EventTyping{
				ChatID:     event.ChatID,
				SenderID:   event.UserID,
				SenderName: event.UserName,
				IsTyping:   event.IsTyping,
			},
		}
	case core.EventMessageRead:
		if event.Receipt == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: event.Kind.String(),
			Data: proto.EventMessageRead{
				MessageID:  event.Receipt.MessageID,
				ReadBy:     event.Receipt.ReadBy,
				ReadByName: event.Receipt.ReadByName,
				ReadAt:     event.Receipt.ReadAt.UTC().Format(time.RFC3339Nano),
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
