package core

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the set of live clients. It does not touch rooms; room
// membership is torn down separately on disconnect.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register allocates an identity for a newly accepted connection and
// records the client. Ids are minted server-side; collisions are not a
// concern by construction.
func (r *Registry) Register() *Client {
	c := NewClient(uuid.NewString())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return c
}

// Unregister drops a client by id. Unknown ids are a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Count returns the number of live clients.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
