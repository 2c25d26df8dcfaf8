package game

import (
	"math"
	"math/rand"
	"time"
)

// Mode selects the rule set a room runs under.
type Mode string

const (
	// ModeCasual: food-only growth, no combat, no wager.
	ModeCasual Mode = "casual"
	// ModeArena: full combat rules with the wager economy.
	ModeArena Mode = "arena"
)

func (m Mode) Combat() bool { return m == ModeArena }

func (m Mode) Valid() bool { return m == ModeCasual || m == ModeArena }

// Rejection reports a player action the simulation refused, with the reason.
type Rejection struct {
	Player string
	Action string
	Reason string
}

// World is one room's entire simulation state. It is owned exclusively by
// the room's tick goroutine and is never touched concurrently: every method
// here runs inside a single tick.
type World struct {
	Mode Mode
	Tick int64

	now time.Time
	rng *rand.Rand

	// order preserves join order; it is the documented iteration order for
	// all collision phases.
	order      []string
	actors     map[string]Actor
	combatants map[string]*Snake

	Food        []*Food
	Orbs        []*Orb
	WeaponDrops []*WeaponPickup
	AmmoDrops   []*AmmoPickup
	Projectiles []*Projectile
}

// NewWorld seeds a world with its initial pickup populations.
func NewWorld(mode Mode, seed int64) *World {
	w := &World{
		Mode:       mode,
		rng:        rand.New(rand.NewSource(seed)),
		actors:     make(map[string]Actor),
		combatants: make(map[string]*Snake),
	}
	for i := 0; i < FoodTarget; i++ {
		w.Food = append(w.Food, randomFood(w.rng))
	}
	if mode.Combat() {
		for i := 0; i < OrbTarget; i++ {
			w.Orbs = append(w.Orbs, randomOrb(w.rng))
		}
		for i := 0; i < WeaponDropTarget; i++ {
			w.WeaponDrops = append(w.WeaponDrops, randomWeaponPickup(w.rng))
		}
		for i := 0; i < AmmoDropTarget; i++ {
			w.AmmoDrops = append(w.AmmoDrops, randomAmmoPickup(w.rng))
		}
	}
	return w
}

// spawnPose picks a random position near the world center and a random
// heading.
func (w *World) spawnPose() (Point, float64) {
	ang := w.rng.Float64() * 2 * math.Pi
	dist := w.rng.Float64() * SpawnRadius
	return Point{
		X: WorldWidth/2 + math.Cos(ang)*dist,
		Y: WorldHeight/2 + math.Sin(ang)*dist,
	}, w.rng.Float64() * 2 * math.Pi
}

// AddPlayer creates the mode-appropriate entity and registers it at the end
// of the join order.
func (w *World) AddPlayer(id, name, color string, wager int, now time.Time) Actor {
	w.now = now
	if color == "" {
		color = Palette[len(w.order)%len(Palette)]
	}
	pos, angle := w.spawnPose()
	var a Actor
	if w.Mode.Combat() {
		s := NewSnake(id, name, color, pos, angle, wager, now)
		w.combatants[id] = s
		a = s
	} else {
		a = NewCasualSnake(id, name, color, pos, angle, now)
	}
	w.actors[id] = a
	w.order = append(w.order, id)
	return a
}

// RemovePlayer drops the entity; removing an absent id is a no-op.
func (w *World) RemovePlayer(id string) {
	if _, ok := w.actors[id]; !ok {
		return
	}
	delete(w.actors, id)
	delete(w.combatants, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

func (w *World) PlayerCount() int { return len(w.order) }

func (w *World) Actor(id string) Actor { return w.actors[id] }

// SnakeByID returns the combat entity, nil in casual rooms.
func (w *World) SnakeByID(id string) *Snake { return w.combatants[id] }

// Step is one atomic simulation tick: actions, movement, regeneration,
// collisions, combat. inputs holds the per-player buffered intent; players
// with nothing buffered continue straight without boosting.
func (w *World) Step(inputs map[string]Input, now time.Time) []Rejection {
	w.now = now
	w.Tick++

	rejected := w.applyActions(inputs)

	for _, id := range w.order {
		in, ok := inputs[id]
		if !ok {
			in = NoInput
		}
		w.actors[id].Step(in, now)
	}

	w.regenerateItems()

	w.collectPickups()
	if w.Mode.Combat() {
		w.headVsBody()
		w.headVsHead()
		for _, id := range w.order {
			s := w.combatants[id]
			if s == nil || !s.Competing() {
				continue
			}
			in, ok := inputs[id]
			if !ok {
				in = NoInput
			}
			w.applyFire(s, in)
		}
		w.stepProjectiles()
	}

	return rejected
}

// applyActions resolves the discrete requests (respawn, cashout, weapon
// switch) before physics so they take effect within the same tick.
func (w *World) applyActions(inputs map[string]Input) []Rejection {
	var rejected []Rejection
	for _, id := range w.order {
		in, ok := inputs[id]
		if !ok {
			continue
		}
		s := w.combatants[id]
		if s == nil {
			continue
		}
		if in.Respawn {
			if err := w.respawnSnake(s); err != nil {
				rejected = append(rejected, Rejection{Player: id, Action: "respawn", Reason: err.Error()})
			}
		}
		if in.Cashout {
			if _, err := s.Cashout(); err != nil {
				rejected = append(rejected, Rejection{Player: id, Action: "cashout", Reason: err.Error()})
			}
		}
		if in.SwitchSlot >= 0 {
			if !s.SwitchWeapon(in.SwitchSlot) {
				rejected = append(rejected, Rejection{Player: id, Action: "switch_weapon", Reason: "no such inventory slot"})
			}
		}
	}
	return rejected
}
