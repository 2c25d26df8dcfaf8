package game

// Input is one player's buffered intent, applied at the start of the next
// tick. Continuous fields (angle, boost, firing) are last-write-wins; the
// one-shot flags are OR-merged by the room until the tick consumes them, so
// a click landing between ticks is never lost.
type Input struct {
	TargetAngle float64
	HasAngle    bool // false: keep previous heading (soft-fail on malformed input)
	Boost       bool

	Firing     bool  // sustained-fire intent (held trigger)
	FireTarget Point // aim point for any shot this tick
	Shoot      bool  // discrete fire request (one-shot)

	SwitchSlot int // inventory slot to equip; -1 means no request
	Cashout    bool
	Respawn    bool
}

// NoInput is applied to players with nothing buffered this tick: continue
// straight, non-boosting, no actions.
var NoInput = Input{SwitchSlot: -1}
