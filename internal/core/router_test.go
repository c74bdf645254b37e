package core

import (
	"strings"
	"testing"

	"github.com/docsync/relay/internal/codec"
	"github.com/docsync/relay/internal/crdt"
)

func createRoom(t *testing.T, rt *Router, c *Client) string {
	t.Helper()
	rt.Handle(c, &Command{Kind: CommandCreateRoom})
	ev := mustEvent(t, c.Events, EventRoomCreated)
	if ev.Room == "" {
		t.Fatal("room_created carried no room id")
	}
	return ev.Room
}

func joinRoom(t *testing.T, rt *Router, c *Client, room, name string) *Event {
	t.Helper()
	rt.Handle(c, &Command{Kind: CommandJoin, Room: room, Name: name})
	return mustEvent(t, c.Events, EventFullState)
}

func mustError(t *testing.T, rt *Router, c *Client, cmd *Command, code string) {
	t.Helper()
	rt.Handle(c, cmd)
	ev := mustEvent(t, c.Events, EventError)
	if ev.Error == nil || ev.Error.Code != code {
		t.Fatalf("expected error code %q, got %+v", code, ev.Error)
	}
}

func TestCreateRoomYieldsDistinctIDs(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")

	first := createRoom(t, rt, c)
	second := createRoom(t, rt, c)
	if first == second {
		t.Fatalf("two create_room calls yielded the same id %q", first)
	}
}

func TestJoinValidation(t *testing.T) {
	rt, mgr := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")

	mustError(t, rt, c, &Command{Kind: CommandJoin}, ErrCodeBadRequest)
	mustError(t, rt, c, &Command{Kind: CommandJoin, Room: "ghost"}, ErrCodeRoomNotFound)
	if mgr.Get("ghost") != nil {
		t.Fatal("failed join created the room")
	}
}

func TestJoinFreshRoomDeliversEmptySnapshot(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")

	id := createRoom(t, rt, c)
	state := joinRoom(t, rt, c, id, "alice")
	if state.Room != id || state.Update != "" {
		t.Fatalf("unexpected full state: %+v", state)
	}
}

func TestJoinWhileJoinedErrors(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")

	first := createRoom(t, rt, c)
	second := createRoom(t, rt, c)
	joinRoom(t, rt, c, first, "alice")

	mustError(t, rt, c, &Command{Kind: CommandJoin, Room: second}, ErrCodeAlreadyInRoom)
}

func TestUpdateValidation(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")
	delta := codec.Encode([]byte("u1"))

	// No room in the message and not joined anywhere.
	mustError(t, rt, c, &Command{Kind: CommandUpdate, Update: delta}, ErrCodeNotInRoom)
	// Explicit room that does not exist.
	mustError(t, rt, c, &Command{Kind: CommandUpdate, Room: "ghost", Update: delta}, ErrCodeRoomNotFound)

	id := createRoom(t, rt, c)
	joinRoom(t, rt, c, id, "alice")

	mustError(t, rt, c, &Command{Kind: CommandUpdate}, ErrCodeBadRequest)
	mustError(t, rt, c, &Command{Kind: CommandUpdate, Update: "%%% not base64"}, ErrCodeBadRequest)
}

func TestRejectedMergeHasNoObservableEffect(t *testing.T) {
	rt, _ := newTestRouter(rejectEngine{})
	a := NewClient("a")
	b := NewClient("b")

	id := createRoom(t, rt, a)
	joinRoom(t, rt, a, id, "alice")
	joinRoom(t, rt, b, id, "bob")

	mustError(t, rt, a, &Command{Kind: CommandUpdate, Update: codec.Encode([]byte("u1"))}, ErrCodeMergeFailed)

	// The sender-only error is the sole observable effect: no broadcast.
	mustNoEvent(t, b.Events)
}

func TestUpdateBroadcastsToOtherMembersOnly(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	a := NewClient("a")
	b := NewClient("b")
	c := NewClient("c")

	id := createRoom(t, rt, a)
	joinRoom(t, rt, a, id, "alice")
	joinRoom(t, rt, b, id, "")
	joinRoom(t, rt, c, id, "carol")

	delta := codec.Encode([]byte("u1"))
	rt.Handle(b, &Command{Kind: CommandUpdate, Update: delta})

	ack := mustEvent(t, b.Events, EventAck)
	if ack.Room != id {
		t.Fatalf("ack for wrong room: %+v", ack)
	}

	for _, member := range []*Client{a, c} {
		remote := mustEvent(t, member.Events, EventRemoteUpdate)
		if remote.Room != id || remote.Update != delta {
			t.Fatalf("unexpected remote update for %s: %+v", member.ID, remote)
		}
		if remote.ClientID != b.ID || remote.ClientName != "Anonymous" {
			t.Fatalf("remote update not tagged with sender: %+v", remote)
		}
	}

	// The originator must never see its own update echoed back.
	mustNoEvent(t, b.Events)
}

func TestGetStateReflectsUpdates(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	a := NewClient("a")

	id := createRoom(t, rt, a)
	joinRoom(t, rt, a, id, "alice")

	delta := codec.Encode([]byte("u1"))
	rt.Handle(a, &Command{Kind: CommandUpdate, Update: delta})
	mustEvent(t, a.Events, EventAck)

	rt.Handle(a, &Command{Kind: CommandGetState})
	state := mustEvent(t, a.Events, EventFullState)
	if state.Room != id || state.Update == "" {
		t.Fatalf("unexpected full state: %+v", state)
	}

	snap, err := codec.Decode(state.Update)
	if err != nil || len(snap) == 0 {
		t.Fatalf("snapshot not decodable: %v", err)
	}
}

func TestGetStateValidation(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")

	mustError(t, rt, c, &Command{Kind: CommandGetState}, ErrCodeNotInRoom)
	mustError(t, rt, c, &Command{Kind: CommandGetState, Room: "ghost"}, ErrCodeRoomNotFound)
}

func TestUnknownTypeErrors(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	c := NewClient("a")

	mustError(t, rt, c, &Command{Kind: CommandUnknown, Type: "dance"}, ErrCodeUnknownType)

	// The connection stays usable afterwards.
	createRoom(t, rt, c)
}

func TestDisconnectedMemberStopsReceiving(t *testing.T) {
	rt, mgr := newTestRouter(crdt.NewDeltaSet())
	a := NewClient("a")
	b := NewClient("b")

	id := createRoom(t, rt, a)
	joinRoom(t, rt, a, id, "alice")
	joinRoom(t, rt, b, id, "bob")

	before := mgr.Get(id).size()
	b.MarkClosed()
	mgr.Leave(b)
	if got := mgr.Get(id).size(); got != before-1 {
		t.Fatalf("membership went from %d to %d on disconnect", before, got)
	}

	rt.Handle(a, &Command{Kind: CommandUpdate, Update: codec.Encode([]byte("u1"))})
	mustEvent(t, a.Events, EventAck)
	mustNoEvent(t, b.Events)

	// The document survives the disconnect.
	snap, cerr := mgr.Snapshot(id)
	if cerr != nil || len(snap) == 0 {
		t.Fatalf("document affected by disconnect: %v", cerr)
	}
}

// The full life of a document: create, join, update, late join, counter
// update, resync.
func TestCollaborationScenario(t *testing.T) {
	rt, _ := newTestRouter(crdt.NewDeltaSet())
	a := NewClient("a")
	b := NewClient("b")

	room := createRoom(t, rt, a)

	state := joinRoom(t, rt, a, room, "alice")
	if state.Update != "" {
		t.Fatalf("fresh room not empty: %+v", state)
	}

	u1 := codec.Encode([]byte("u1"))
	rt.Handle(a, &Command{Kind: CommandUpdate, Update: u1})
	mustEvent(t, a.Events, EventAck)

	state = joinRoom(t, rt, b, room, "bob")
	if state.Update == "" {
		t.Fatal("late joiner did not receive accumulated state")
	}

	u2 := codec.Encode([]byte("u2"))
	rt.Handle(b, &Command{Kind: CommandUpdate, Update: u2})
	mustEvent(t, b.Events, EventAck)

	remote := mustEvent(t, a.Events, EventRemoteUpdate)
	if remote.Update != u2 || remote.ClientID != b.ID || remote.ClientName != "bob" {
		t.Fatalf("unexpected remote update: %+v", remote)
	}

	rt.Handle(a, &Command{Kind: CommandGetState})
	final := mustEvent(t, a.Events, EventFullState)

	snap, err := codec.Decode(final.Update)
	if err != nil {
		t.Fatalf("decode final snapshot: %v", err)
	}
	both := string(snap)
	if !strings.Contains(both, "u1") || !strings.Contains(both, "u2") {
		t.Fatalf("final snapshot missing deltas: %q", both)
	}
}
