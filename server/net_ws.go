package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"snakepit/game"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	readLimit  = 1 << 16
	joinWait   = 10 * time.Second
	sendBuffer = 64
)

// ClientConn wraps the websocket write side: outbound snapshots queue on a
// buffered channel and a dedicated write goroutine drains it, so a slow
// client never blocks its room's tick.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
}

// Enqueue queues an outbound frame; full queue drops the frame, keeping the
// stream realtime rather than backlogged.
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *ClientConn) Close() {
	if c.send != nil {
		close(c.send)
		c.send = nil
	}
	_ = c.ws.Close()
}

func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump decodes in-game messages and buffers them into the room.
// Malformed frames are skipped, not fatal. Exit delivers the disconnect
// notification; a leave for an already-gone player is a no-op in the room.
func (c *ClientConn) readPump(room *Room, playerID string) {
	defer c.ws.Close()
	defer room.send(leaveCmd{playerID: playerID})
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var msg InputMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case MsgMove, MsgFire, MsgSwitch, MsgCashout, MsgRespawn:
			room.OnInput(playerID, msg)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Clients are served from arbitrary origins; tighten in deployment.
		return true
	},
}

// HandleWS upgrades the connection and runs the join handshake: the first
// frame must be a join request, answered with a welcome carrying the room
// id, assigned player id and initial snapshot.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("ws upgrade: %v", err)
		return
	}

	req, err := readJoinRequest(ws)
	if err != nil {
		Log.Warnf("join handshake failed: %v", err)
		rejectWS(ws, err.Error())
		return
	}
	mode := game.Mode(req.Mode)

	room := s.registry.FindOrCreateRoom(mode)
	client := NewClientConn(ws)
	reply := make(chan joinReply, 1)
	room.send(joinCmd{conn: client, req: req, reply: reply})

	var res joinReply
	select {
	case res = <-reply:
	case <-time.After(joinWait):
		room.send(abandonCmd{})
		rejectWS(ws, "join timed out")
		return
	}

	s.registry.trackPlayer(res.playerID, room.ID)
	welcome, _ := json.Marshal(WelcomeMessage{
		Type:     MsgWelcome,
		RoomID:   room.ID,
		PlayerID: res.playerID,
		Snapshot: res.snapshot,
	})
	client.Enqueue(welcome)

	go client.writePump()
	go func() {
		client.readPump(room, res.playerID)
		s.registry.untrackPlayer(res.playerID)
	}()
}

func readJoinRequest(ws *websocket.Conn) (JoinRequest, error) {
	var req JoinRequest
	_ = ws.SetReadDeadline(time.Now().Add(joinWait))
	_, payload, err := ws.ReadMessage()
	if err != nil {
		return req, errBadJoin("connection closed before join")
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.Type != MsgJoin {
		return req, errBadJoin("first message must be a join request")
	}
	if !game.Mode(req.Mode).Valid() {
		return req, errBadJoin("unknown mode")
	}
	if req.Username == "" {
		return req, errBadJoin("missing username")
	}
	if req.Wager < 0 {
		return req, errBadJoin("negative wager")
	}
	_ = ws.SetReadDeadline(time.Time{})
	return req, nil
}

type errBadJoin string

func (e errBadJoin) Error() string { return string(e) }

func rejectWS(ws *websocket.Conn, reason string) {
	b, _ := json.Marshal(ErrorMessage{Type: MsgError, Reason: reason})
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(websocket.TextMessage, b)
	_ = ws.Close()
}
