package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom requests a fresh room.
	CommandCreateRoom CommandKind = iota
	// CommandJoin subscribes the client to an existing room.
	CommandJoin
	// CommandUpdate submits a merge delta for a room.
	CommandUpdate
	// CommandGetState requests a full-document snapshot.
	CommandGetState
	// CommandUnknown is anything else; the router answers with an error.
	CommandUnknown
)

// Command is one decoded inbound frame.
type Command struct {
	Kind   CommandKind
	Room   string
	Name   string
	Update string // text-encoded delta exactly as received
	Type   string // original wire type, kept for unknown-type errors
}
