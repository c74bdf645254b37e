package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated answers create_room with the new room id.
	EventRoomCreated EventKind = iota
	// EventFullState delivers a full-document snapshot.
	EventFullState
	// EventRemoteUpdate fans another member's accepted delta out.
	EventRemoteUpdate
	// EventAck confirms the client's own delta was merged.
	EventAck
	// EventError reports a protocol, application or merge failure.
	EventError
)

// Event is sent to clients to describe what happened. Update carries the
// text-encoded payload; for remote updates it is the sender's bytes
// untouched, so the fan-out is byte-identical to what was submitted.
type Event struct {
	Kind       EventKind
	Room       string
	Update     string
	ClientID   string
	ClientName string
	Error      *CoreError
}
