package server

import (
	"sync"

	"github.com/google/uuid"

	"snakepit/game"
)

// Registry owns the room table and the global player→room index. It is an
// explicit object constructed in main and handed to the Server, never a
// package-level singleton. The index is touched only at join/leave
// boundaries; the per-tick hot path never takes these locks.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	players map[string]string // player id -> room id
	tickHz  int
}

func NewRegistry(tickHz int) *Registry {
	if tickHz <= 0 {
		tickHz = TicksPerSecond
	}
	return &Registry{
		rooms:   make(map[string]*Room),
		players: make(map[string]string),
		tickHz:  tickHz,
	}
}

// FindOrCreateRoom returns a room of the requested mode with spare
// capacity, creating one when every existing room is full. The returned
// room has one seat reserved for the caller.
func (g *Registry) FindOrCreateRoom(mode game.Mode) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.rooms {
		if r.Mode == mode && r.reserve() {
			return r
		}
	}
	r := newRoom(uuid.NewString(), mode, g.tickHz)
	r.onEmpty = g.removeRoom
	g.rooms[r.ID] = r
	r.reserve()
	go r.run()
	Log.Infof("room created: id=%s mode=%s", r.ID, mode)
	return r
}

// removeRoom tears the room out of the table once its last member left. The
// room has already stopped its own tick loop.
func (g *Registry) removeRoom(roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, roomID)
	Log.Infof("room removed: id=%s", roomID)
}

// Room looks up a live room by id.
func (g *Registry) Room(id string) *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rooms[id]
}

// RoomCount reports the number of live rooms.
func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

func (g *Registry) trackPlayer(playerID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.players[playerID] = roomID
}

func (g *Registry) untrackPlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.players, playerID)
}

// RoomOf resolves a player's room; nil when the player is unknown.
func (g *Registry) RoomOf(playerID string) *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if roomID, ok := g.players[playerID]; ok {
		return g.rooms[roomID]
	}
	return nil
}
