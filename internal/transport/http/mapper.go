package http

import (
	"github.com/docsync/relay/internal/core"
	"github.com/docsync/relay/internal/proto"
)

func commandFromMessage(msg proto.Message) *core.Command {
	switch msg.Type {
	case proto.TypeCreateRoom:
		return &core.Command{Kind: core.CommandCreateRoom}
	case proto.TypeJoin:
		return &core.Command{Kind: core.CommandJoin, Room: msg.Room, Name: msg.Name}
	case proto.TypeUpdate:
		return &core.Command{Kind: core.CommandUpdate, Room: msg.Room, Update: msg.Update}
	case proto.TypeGetState:
		return &core.Command{Kind: core.CommandGetState, Room: msg.Room}
	default:
		return &core.Command{Kind: core.CommandUnknown, Type: msg.Type}
	}
}

func messageFromEvent(ev *core.Event) proto.Message {
	switch ev.Kind {
	case core.EventRoomCreated:
		return proto.Message{Type: proto.TypeRoomCreated, RoomID: ev.Room}
	case core.EventFullState:
		return proto.Message{Type: proto.TypeFullState, Room: ev.Room, Update: ev.Update}
	case core.EventRemoteUpdate:
		return proto.Message{
			Type:       proto.TypeRemoteUpdate,
			Room:       ev.Room,
			Update:     ev.Update,
			ClientID:   ev.ClientID,
			ClientName: ev.ClientName,
		}
	case core.EventAck:
		return proto.Message{Type: proto.TypeAck, Room: ev.Room}
	case core.EventError:
		if ev.Error == nil {
			return proto.Message{Type: proto.TypeError, Msg: "unknown error"}
		}
		return proto.Message{Type: proto.TypeError, Msg: ev.Error.Message}
	default:
		return proto.Message{Type: proto.TypeError, Msg: "internal error"}
	}
}
