// Package proto defines the wire protocol: one WebSocket frame carries one
// JSON-encoded Message with flat fields.
package proto

// Message type identifiers.
const (
	TypeHello        = "hello"
	TypeCreateRoom   = "create_room"
	TypeRoomCreated  = "room_created"
	TypeJoin         = "join"
	TypeFullState    = "full_state_crdt"
	TypeUpdate       = "update_crdt"
	TypeRemoteUpdate = "remote_update_crdt"
	TypeAck          = "ack"
	TypeGetState     = "get_state"
	TypeError        = "error"
)

// Message is the envelope for every frame in both directions. Which fields
// are meaningful depends on Type:
//
//	hello               clientId                         server->client, on connect
//	create_room         -                                client->server
//	room_created        roomId                           server->client
//	join                room, name?                      client->server
//	full_state_crdt     room, update (snapshot)          server->client
//	update_crdt         room?, update (delta)            client->server
//	remote_update_crdt  room, update, clientId, clientName
//	ack                 room                             server->client
//	get_state           room?                            client->server
//	error               message                          server->client
//
// update fields carry base64 text of otherwise-opaque engine bytes; an
// absent update is the empty document.
type Message struct {
	Type       string `json:"type"`
	Room       string `json:"room,omitempty"`
	RoomID     string `json:"roomId,omitempty"`
	Name       string `json:"name,omitempty"`
	Update     string `json:"update,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
	ClientName string `json:"clientName,omitempty"`
	Msg        string `json:"message,omitempty"`
}
