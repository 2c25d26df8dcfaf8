package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"snakepit/game"
)

func TestMain(m *testing.M) {
	if err := InitLogger(filepath.Join(os.TempDir(), "snakepit-test.log"), true); err != nil {
		panic(err)
	}
	code := m.Run()
	SyncLogger()
	os.Exit(code)
}

type fakeConn struct {
	mu     sync.Mutex
	msgs   [][]byte
	closed bool
}

func (f *fakeConn) Enqueue(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, append([]byte(nil), b...))
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) states() []StateMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []StateMessage
	for _, b := range f.msgs {
		var m StateMessage
		if err := json.Unmarshal(b, &m); err == nil && m.Type == MsgState {
			out = append(out, m)
		}
	}
	return out
}

func join(t *testing.T, r *Room, fc Conn, username string, wager int) string {
	t.Helper()
	reply := make(chan joinReply, 1)
	r.send(joinCmd{
		conn:  fc,
		req:   JoinRequest{Type: MsgJoin, Mode: string(r.Mode), Username: username, Wager: wager},
		reply: reply,
	})
	select {
	case res := <-reply:
		if res.playerID == "" {
			t.Fatalf("empty player id from join")
		}
		return res.playerID
	case <-time.After(2 * time.Second):
		t.Fatalf("join timed out")
		return ""
	}
}

func TestRoomBroadcastsJoinedPlayer(t *testing.T) {
	r := newRoom("r1", game.ModeArena, 120)
	r.reserve()
	go r.run()
	defer r.send(leaveCmd{playerID: "never"})

	fc := &fakeConn{}
	playerID := join(t, r, fc, "alice", 50)

	deadline := time.After(2 * time.Second)
	for {
		for _, st := range fc.states() {
			for _, p := range st.Snapshot.Players {
				if p.ID == playerID {
					if p.Name != "alice" {
						t.Fatalf("player name = %q", p.Name)
					}
					r.send(leaveCmd{playerID: playerID})
					return
				}
			}
		}
		select {
		case <-deadline:
			t.Fatalf("no state broadcast contained the joined player")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRoomStopsWhenLastPlayerLeaves(t *testing.T) {
	var emptied atomic.Bool
	r := newRoom("r2", game.ModeArena, 120)
	r.onEmpty = func(string) { emptied.Store(true) }
	r.reserve()
	go r.run()

	fc := &fakeConn{}
	playerID := join(t, r, fc, "bob", 10)
	r.send(leaveCmd{playerID: playerID})

	deadline := time.After(2 * time.Second)
	for !emptied.Load() {
		select {
		case <-deadline:
			t.Fatalf("room never reported empty")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// The loop is down: the tick counter must stop advancing.
	settle := atomic.LoadInt64(&r.metrics.TickCount)
	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt64(&r.metrics.TickCount); got != settle {
		t.Fatalf("ticks kept firing after teardown: %d -> %d", settle, got)
	}

	fc.mu.Lock()
	closed := fc.closed
	fc.mu.Unlock()
	if !closed {
		t.Fatalf("client connection not closed on leave")
	}
}

func TestLeaveForUnknownPlayerIsNoOp(t *testing.T) {
	r := newRoom("r3", game.ModeArena, 120)
	r.reserve()
	fc := &fakeConn{}
	reply := make(chan joinReply, 1)
	r.handleCommand(joinCmd{conn: fc, req: JoinRequest{Username: "x"}, reply: reply})
	<-reply

	r.handleCommand(leaveCmd{playerID: "ghost"})
	if r.world.PlayerCount() != 1 {
		t.Fatalf("ghost leave removed a player")
	}
}

func TestInputBufferLastWriteWinsWithStickyActions(t *testing.T) {
	r := newRoom("r4", game.ModeArena, 120)
	r.reserve()
	fc := &fakeConn{}
	reply := make(chan joinReply, 1)
	r.handleCommand(joinCmd{conn: fc, req: JoinRequest{Username: "x"}, reply: reply})
	res := <-reply

	angle1, angle2 := 1.0, 2.0
	boost := true
	r.handleCommand(inputCmd{playerID: res.playerID, msg: InputMessage{Type: MsgFire, X: 9, Y: 9}})
	r.handleCommand(inputCmd{playerID: res.playerID, msg: InputMessage{Type: MsgMove, Angle: &angle1, Boost: &boost}})
	r.handleCommand(inputCmd{playerID: res.playerID, msg: InputMessage{Type: MsgMove, Angle: &angle2}})

	in := r.inputs[res.playerID]
	if in.TargetAngle != angle2 || !in.HasAngle {
		t.Fatalf("angle buffer = %+v, want last write %f", in, angle2)
	}
	if !in.Boost {
		t.Fatalf("boost flag lost when a later message omitted it")
	}
	if !in.Shoot {
		t.Fatalf("one-shot fire request lost by later input")
	}

	// The tick consumes the buffer.
	r.tick()
	if _, ok := r.inputs[res.playerID]; ok {
		t.Fatalf("buffer survived the tick")
	}
}

func TestInputForUnknownPlayerIgnored(t *testing.T) {
	r := newRoom("r5", game.ModeArena, 120)
	angle := 1.0
	r.handleCommand(inputCmd{playerID: "ghost", msg: InputMessage{Type: MsgMove, Angle: &angle}})
	if len(r.inputs) != 0 {
		t.Fatalf("input buffered for a player not in the room")
	}
}

func TestReserveStopsAtCapacity(t *testing.T) {
	r := newRoom("r6", game.ModeArena, 120)
	for i := 0; i < game.RoomCap; i++ {
		if !r.reserve() {
			t.Fatalf("reserve %d failed below capacity", i)
		}
	}
	if r.reserve() {
		t.Fatalf("reserve succeeded past capacity")
	}
}

func TestTickSurvivesPanicInOneRoom(t *testing.T) {
	r := newRoom("r7", game.ModeArena, 120)
	r.reserve()
	fc := &fakeConn{}
	reply := make(chan joinReply, 1)
	r.handleCommand(joinCmd{conn: fc, req: JoinRequest{Username: "x"}, reply: reply})
	<-reply

	// Corrupt the world so the step panics; the barrier must absorb it.
	r.world = nil
	defer func() {
		if rec := recover(); rec != nil {
			t.Fatalf("tick panic escaped the room barrier: %v", rec)
		}
	}()
	r.tick()
}
