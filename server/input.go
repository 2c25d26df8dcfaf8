package server

import "snakepit/game"

// Wire message types.
const (
	MsgJoin    = "join"
	MsgMove    = "move"
	MsgFire    = "fire"
	MsgSwitch  = "switch"
	MsgCashout = "cashout"
	MsgRespawn = "respawn"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgError   = "error"
)

// JoinRequest is the first message a client sends after connecting.
// {"type":"join","mode":"arena","username":"ed","wager":50,"color":"#f00"}
type JoinRequest struct {
	Type     string `json:"type"`
	Mode     string `json:"mode"`
	Username string `json:"username"`
	Wager    int    `json:"wager"`
	Color    string `json:"color"`
}

// InputMessage is any in-game client message. Optional fields are pointers
// so a missing angle or boost flag falls back to the previous intent
// instead of zeroing it.
type InputMessage struct {
	Type   string   `json:"type"`
	Angle  *float64 `json:"angle,omitempty"`
	Boost  *bool    `json:"boost,omitempty"`
	Firing *bool    `json:"firing,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Slot   *int     `json:"slot,omitempty"`
}

// WelcomeMessage answers a join: the assigned ids plus an initial snapshot.
type WelcomeMessage struct {
	Type     string        `json:"type"`
	RoomID   string        `json:"roomId"`
	PlayerID string        `json:"playerId"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// StateMessage carries the per-tick snapshot.
type StateMessage struct {
	Type     string        `json:"type"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// ErrorMessage reports a rejected handshake.
type ErrorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// mergeInput folds one wire message into the tick buffer for a player.
// Continuous fields are last-write-wins; the one-shot flags accumulate
// until the next tick consumes the buffer, so a click between ticks is
// never lost.
func mergeInput(prev game.Input, msg InputMessage) game.Input {
	in := prev
	switch msg.Type {
	case MsgMove:
		if msg.Angle != nil {
			in.TargetAngle = *msg.Angle
			in.HasAngle = true
		}
		if msg.Boost != nil {
			in.Boost = *msg.Boost
		}
	case MsgFire:
		if msg.Firing != nil {
			in.Firing = *msg.Firing
		}
		// An explicit release ({"firing":false}) only clears the sustained
		// intent; it is not a shot request.
		if msg.Firing == nil || *msg.Firing {
			in.Shoot = true
			in.FireTarget = game.Point{X: msg.X, Y: msg.Y}
		}
	case MsgSwitch:
		if msg.Slot != nil {
			in.SwitchSlot = *msg.Slot
		}
	case MsgCashout:
		in.Cashout = true
	case MsgRespawn:
		in.Respawn = true
	}
	return in
}
