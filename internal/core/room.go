package core

import (
	"sync"

	"github.com/docsync/relay/internal/crdt"
)

// Room owns one shared document and the set of members eligible to receive
// its broadcasts. A single mutex guards both, so no two deltas for the same
// room are ever merged concurrently and a join's membership insert and
// snapshot are atomic. Different rooms share nothing.
type Room struct {
	ID string

	mu      sync.Mutex
	doc     crdt.Document
	members map[*Client]struct{}
}

func newRoom(id string, doc crdt.Document) *Room {
	return &Room{
		ID:      id,
		doc:     doc,
		members: make(map[*Client]struct{}),
	}
}

// join adds a member and returns the snapshot the new member must start
// from. Done under one lock so no accepted delta can fall between the two.
func (r *Room) join(c *Client) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[c] = struct{}{}
	return r.doc.Snapshot()
}

func (r *Room) leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, c)
}

func (r *Room) applyDelta(update []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.Apply(update)
}

func (r *Room) snapshot() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.Snapshot()
}

// membersExcept returns a point-in-time copy of the member set without the
// excluded client, for iteration outside the room lock.
func (r *Room) membersExcept(excluding *Client) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Client, 0, len(r.members))
	for member := range r.members {
		if member != excluding {
			out = append(out, member)
		}
	}
	return out
}

func (r *Room) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
