package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/docsync/relay/internal/crdt"
)

// Manager owns the room id -> Room mapping. Its lock covers only the map;
// per-room work happens under each room's own lock, so updates to different
// rooms proceed in parallel.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	engine crdt.Engine
	log    *zerolog.Logger
}

// NewManager builds a manager that creates documents through the given engine.
func NewManager(engine crdt.Engine, logger *zerolog.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		engine: engine,
		log:    logger,
	}
}

// Create allocates a fresh room with an empty document and no members.
// Room ids are minted server-side; clients never supply them.
func (m *Manager) Create() string {
	id := uuid.NewString()
	room := newRoom(id, m.engine.NewDocument())

	m.mu.Lock()
	m.rooms[id] = room
	m.mu.Unlock()

	m.log.Info().Str("room", id).Msg("room created")
	return id
}

// Get looks a room up without creating it. Returns nil when absent.
func (m *Manager) Get(id string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[id]
}

// Join registers the client as a member of an existing room and returns the
// snapshot to bring it up to date. Join never creates a room.
func (m *Manager) Join(roomID string, c *Client, name string) ([]byte, *CoreError) {
	room := m.Get(roomID)
	if room == nil {
		return nil, coreError(ErrCodeRoomNotFound, "Room not found")
	}

	snap := room.join(c)
	c.room = roomID
	c.name = name

	m.log.Info().Str("room", roomID).Str("client_id", c.ID).Str("client_name", name).Msg("client joined room")
	return snap, nil
}

// Leave removes the client from its current room's member set, if any.
// The document is untouched.
func (m *Manager) Leave(c *Client) {
	if c.room == "" {
		return
	}
	room := m.Get(c.room)
	if room == nil {
		return
	}

	room.leave(c)
	m.log.Info().Str("room", c.room).Str("client_id", c.ID).Int("remaining", room.size()).Msg("client left room")
	c.room = ""
}

// ApplyDelta merges one decoded delta into a room's document and returns the
// room for subsequent fan-out. On any failure the document is unchanged.
func (m *Manager) ApplyDelta(roomID string, update []byte) (*Room, *CoreError) {
	room := m.Get(roomID)
	if room == nil {
		return nil, coreError(ErrCodeRoomNotFound, "Room not found")
	}
	if err := room.applyDelta(update); err != nil {
		m.log.Warn().Err(err).Str("room", roomID).Msg("delta rejected")
		return nil, coreError(ErrCodeMergeFailed, "Failed to apply update")
	}
	return room, nil
}

// Snapshot returns the current full-document state of a room.
func (m *Manager) Snapshot(roomID string) ([]byte, *CoreError) {
	room := m.Get(roomID)
	if room == nil {
		return nil, coreError(ErrCodeRoomNotFound, "Room not found")
	}
	return room.snapshot(), nil
}

// Stats reports the number of rooms and the total membership across them.
func (m *Manager) Stats() (rooms, members int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms = len(m.rooms)
	for _, room := range m.rooms {
		members += room.size()
	}
	return rooms, members
}
