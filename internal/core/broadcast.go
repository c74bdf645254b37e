package core

import "github.com/rs/zerolog"

// Dispatcher fans events out to room members. Send failures are a
// per-recipient concern: they are logged and never abort delivery to the
// remaining members or surface to the sender.
type Dispatcher struct {
	log *zerolog.Logger
}

// NewDispatcher builds a dispatcher reporting failures to the given logger.
func NewDispatcher(logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{log: logger}
}

// Broadcast delivers the event to every current member of the room except
// the excluded sender. Membership is snapshotted at call time; delivery
// order across members is unspecified.
func (d *Dispatcher) Broadcast(room *Room, excluding *Client, ev *Event) {
	for _, member := range room.membersExcept(excluding) {
		if !member.send(ev) {
			d.log.Warn().
				Str("room", room.ID).
				Str("client_id", member.ID).
				Msg("dropped outbound event")
		}
	}
}
