package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"snakepit/game"
)

// Conn is the outbound half of a client connection as the room sees it.
// *ClientConn is the production implementation; tests substitute fakes.
type Conn interface {
	Enqueue(b []byte)
	Close()
}

// Room owns one world and the clients watching it. All room state is
// mutated exclusively by the room's own goroutine: joins, leaves and inputs
// arrive as commands on inbox and are drained at tick boundaries, so a tick
// is one atomic step and rooms never contend with each other.
type Room struct {
	ID   string
	Mode game.Mode

	inbox    chan any
	quit     chan struct{}
	stopOnce sync.Once

	tickHz         int
	broadcastEvery atomic.Int32

	world   *game.World
	clients map[string]Conn
	inputs  map[string]game.Input

	members atomic.Int32
	metrics *RoomMetrics
	onEmpty func(roomID string)
}

// Room commands. joinCmd replies synchronously so the transport can send
// the welcome message before any state broadcast.
type joinCmd struct {
	conn  Conn
	req   JoinRequest
	reply chan joinReply
}

type joinReply struct {
	playerID string
	snapshot game.Snapshot
}

type inputCmd struct {
	playerID string
	msg      InputMessage
}

type leaveCmd struct {
	playerID string
}

// abandonCmd releases a seat reserved by the registry when the join never
// completed (handshake failure).
type abandonCmd struct{}

func newRoom(id string, mode game.Mode, tickHz int) *Room {
	r := &Room{
		ID:      id,
		Mode:    mode,
		inbox:   make(chan any, 256),
		quit:    make(chan struct{}),
		tickHz:  tickHz,
		world:   game.NewWorld(mode, time.Now().UnixNano()),
		clients: make(map[string]Conn),
		inputs:  make(map[string]game.Input),
		metrics: &RoomMetrics{},
	}
	r.broadcastEvery.Store(1)
	return r
}

// Members is the reserved seat count, readable from any goroutine.
func (r *Room) Members() int { return int(r.members.Load()) }

// reserve claims a seat if the room has capacity and is still running.
func (r *Room) reserve() bool {
	select {
	case <-r.quit:
		return false
	default:
	}
	for {
		n := r.members.Load()
		if n >= game.RoomCap {
			return false
		}
		if r.members.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// send posts a command to the room goroutine; drops it if the room already
// stopped so late disconnect notifications are no-ops.
func (r *Room) send(cmd any) {
	select {
	case r.inbox <- cmd:
	case <-r.quit:
	}
}

// OnInput buffers a player's wire message without blocking the read pump;
// when the inbox is congested the message is dropped in favor of tick
// punctuality.
func (r *Room) OnInput(playerID string, msg InputMessage) {
	select {
	case r.inbox <- inputCmd{playerID: playerID, msg: msg}:
	default:
		r.metrics.IncInputDropped()
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case joinCmd:
		now := time.Now()
		playerID := uuid.NewString()
		r.world.AddPlayer(playerID, c.req.Username, c.req.Color, c.req.Wager, now)
		r.clients[playerID] = c.conn
		r.metrics.IncJoin()
		Log.Infof("room %s: %q joined as %s (mode=%s wager=%d)", r.ID, c.req.Username, playerID, r.Mode, c.req.Wager)
		c.reply <- joinReply{playerID: playerID, snapshot: r.world.BuildSnapshot(now)}
	case inputCmd:
		if _, ok := r.clients[c.playerID]; !ok {
			return
		}
		prev, buffered := r.inputs[c.playerID]
		if !buffered {
			prev = game.NoInput
		}
		r.inputs[c.playerID] = mergeInput(prev, c.msg)
		r.metrics.IncInput()
	case leaveCmd:
		r.handleLeave(c.playerID)
	case abandonCmd:
		r.members.Add(-1)
		r.maybeStop()
	}
}

// handleLeave removes the player; an unknown id is a no-op. The room stops
// itself the moment the last seat empties.
func (r *Room) handleLeave(playerID string) {
	conn, ok := r.clients[playerID]
	if !ok {
		return
	}
	conn.Close()
	delete(r.clients, playerID)
	delete(r.inputs, playerID)
	r.world.RemovePlayer(playerID)
	r.members.Add(-1)
	r.metrics.IncLeave()
	Log.Infof("room %s: %s left", r.ID, playerID)
	r.maybeStop()
}

func (r *Room) maybeStop() {
	if r.members.Load() > 0 {
		return
	}
	r.stopOnce.Do(func() {
		close(r.quit)
		if r.onEmpty != nil {
			r.onEmpty(r.ID)
		}
	})
}

// tick runs one simulation step and broadcast. The recover barrier keeps a
// fault in this room from stalling any other room's loop.
func (r *Room) tick() {
	defer func() {
		if rec := recover(); rec != nil {
			Log.Errorf("room %s: tick panic recovered: %v", r.ID, rec)
		}
	}()

	start := time.Now()
	inputs := r.inputs
	if len(inputs) > 0 {
		r.inputs = make(map[string]game.Input, len(inputs))
	}

	for _, rej := range r.world.Step(inputs, start) {
		r.metrics.IncRejected()
		Log.Debugf("room %s: player %s %s rejected: %s", r.ID, rej.Player, rej.Action, rej.Reason)
	}

	every := int64(r.broadcastEvery.Load())
	if every <= 1 || r.world.Tick%every == 0 {
		r.broadcast(start)
	}
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

func (r *Room) broadcast(now time.Time) {
	payload, err := json.Marshal(StateMessage{
		Type:     MsgState,
		Snapshot: r.world.BuildSnapshot(now),
	})
	if err != nil {
		Log.Errorf("room %s: marshal snapshot: %v", r.ID, err)
		return
	}
	for _, conn := range r.clients {
		conn.Enqueue(payload)
	}
}
