package core

import (
	"github.com/rs/zerolog"

	"github.com/docsync/relay/internal/codec"
)

const anonymousName = "Anonymous"

// Router is the protocol state machine. It consumes one decoded command per
// call, validates it, dispatches to the room manager and triggers fan-out.
// It is the sole writer of document state.
//
// Handle is called synchronously from each connection's read goroutine, so
// frames from one connection are processed in arrival order; cross-room
// parallelism and same-room exclusion come from the per-room lock beneath.
type Router struct {
	rooms    *Manager
	dispatch *Dispatcher
	log      *zerolog.Logger
}

// NewRouter builds the router.
func NewRouter(rooms *Manager, dispatcher *Dispatcher, logger *zerolog.Logger) *Router {
	return &Router{
		rooms:    rooms,
		dispatch: dispatcher,
		log:      logger,
	}
}

// Handle processes one inbound command for the given client. Every failure
// is answered with a sender-only error event; none closes the connection.
func (rt *Router) Handle(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandCreateRoom:
		rt.handleCreateRoom(c)
	case CommandJoin:
		rt.handleJoin(c, cmd)
	case CommandUpdate:
		rt.handleUpdate(c, cmd)
	case CommandGetState:
		rt.handleGetState(c, cmd)
	default:
		rt.log.Debug().Str("client_id", c.ID).Str("type", cmd.Type).Msg("unknown message type")
		rt.replyError(c, coreError(ErrCodeUnknownType, "Unknown message type"))
	}
}

func (rt *Router) handleCreateRoom(c *Client) {
	id := rt.rooms.Create()
	rt.reply(c, &Event{Kind: EventRoomCreated, Room: id})
}

func (rt *Router) handleJoin(c *Client, cmd *Command) {
	if cmd.Room == "" {
		rt.replyError(c, coreError(ErrCodeBadRequest, "Missing room"))
		return
	}
	if c.room != "" {
		rt.replyError(c, coreError(ErrCodeAlreadyInRoom, "Already in a room"))
		return
	}

	name := cmd.Name
	if name == "" {
		name = anonymousName
	}

	snap, cerr := rt.rooms.Join(cmd.Room, c, name)
	if cerr != nil {
		rt.replyError(c, cerr)
		return
	}

	rt.reply(c, &Event{Kind: EventFullState, Room: cmd.Room, Update: codec.Encode(snap)})
}

func (rt *Router) handleUpdate(c *Client, cmd *Command) {
	roomID := cmd.Room
	if roomID == "" {
		roomID = c.room
	}
	if roomID == "" {
		rt.replyError(c, coreError(ErrCodeNotInRoom, "Not in a room"))
		return
	}
	if cmd.Update == "" {
		rt.replyError(c, coreError(ErrCodeBadRequest, "Missing update"))
		return
	}

	delta, err := codec.Decode(cmd.Update)
	if err != nil {
		rt.replyError(c, coreError(ErrCodeBadRequest, "Invalid update encoding"))
		return
	}

	room, cerr := rt.rooms.ApplyDelta(roomID, delta)
	if cerr != nil {
		rt.replyError(c, cerr)
		return
	}

	// Fan the sender's encoded payload out untouched, tagged with its
	// identity, then confirm to the sender.
	rt.dispatch.Broadcast(room, c, &Event{
		Kind:       EventRemoteUpdate,
		Room:       roomID,
		Update:     cmd.Update,
		ClientID:   c.ID,
		ClientName: c.name,
	})
	rt.reply(c, &Event{Kind: EventAck, Room: roomID})
}

func (rt *Router) handleGetState(c *Client, cmd *Command) {
	roomID := cmd.Room
	if roomID == "" {
		roomID = c.room
	}
	if roomID == "" {
		rt.replyError(c, coreError(ErrCodeNotInRoom, "Not in a room"))
		return
	}

	snap, cerr := rt.rooms.Snapshot(roomID)
	if cerr != nil {
		rt.replyError(c, cerr)
		return
	}

	rt.reply(c, &Event{Kind: EventFullState, Room: roomID, Update: codec.Encode(snap)})
}

func (rt *Router) reply(c *Client, ev *Event) {
	if !c.send(ev) {
		rt.log.Warn().Str("client_id", c.ID).Int("kind", int(ev.Kind)).Msg("dropped reply")
	}
}

func (rt *Router) replyError(c *Client, cerr *CoreError) {
	rt.reply(c, &Event{Kind: EventError, Error: cerr})
}
