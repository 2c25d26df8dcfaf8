package game

import "time"

// Actor is the capability surface shared by the combat snake and the lighter
// casual-mode player: it can move, be collided with, and accrue score. Rooms
// and the world loop only ever talk to this interface; the combat-only
// surface (weapons, cash, cashout) lives on *Snake.
type Actor interface {
	ID() string
	Name() string
	Color() string

	// movable
	Step(in Input, now time.Time)

	// collidable
	Head() Point
	Size() float64
	Segments() []Point
	Alive() bool
	Invincible(now time.Time) bool

	// scoreable
	CollectFood(f *Food)
	CollectOrb(o *Orb)
	Score() int

	Snapshot(now time.Time) PlayerSnapshot
}
