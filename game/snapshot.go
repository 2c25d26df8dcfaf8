package game

import "time"

// WeaponSummary is the equipped weapon as shown to clients. Ammo is -1 for
// weapons that need none.
type WeaponSummary struct {
	Type WeaponType `json:"type"`
	Name string     `json:"name"`
	Ammo int        `json:"ammo"`
	Spin int        `json:"spin,omitempty"`
}

// PlayerSnapshot is one player's per-tick outbound state.
type PlayerSnapshot struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Angle      float64        `json:"angle"`
	Segments   []Point        `json:"segments"`
	Length     int            `json:"length"`
	Score      int            `json:"score"`
	Color      string         `json:"color"`
	Boosting   bool           `json:"boosting"`
	Alive      bool           `json:"alive"`
	Size       float64        `json:"size"`
	Speed      float64        `json:"speed"`
	Invincible bool           `json:"invincible"`
	State      string         `json:"state,omitempty"`
	Weapon     *WeaponSummary `json:"weapon,omitempty"`
}

// Snapshot is the full outbound room state for one tick. It holds value
// copies, never the world's own slices or pointers, so a consumer may
// marshal it on another goroutine while the room keeps ticking.
type Snapshot struct {
	Tick        int64            `json:"tick"`
	Mode        Mode             `json:"mode"`
	Players     []PlayerSnapshot `json:"players"`
	Food        []Food           `json:"food"`
	Orbs        []Orb            `json:"orbs"`
	WeaponDrops []WeaponPickup   `json:"weaponDrops,omitempty"`
	AmmoDrops   []AmmoPickup     `json:"ammoDrops,omitempty"`
	Projectiles []Projectile     `json:"projectiles,omitempty"`
}

func (b *snakeBody) baseSnapshot(now time.Time) PlayerSnapshot {
	segs := make([]Point, len(b.segments))
	copy(segs, b.segments)
	return PlayerSnapshot{
		ID:         b.id,
		Name:       b.name,
		X:          b.X,
		Y:          b.Y,
		Angle:      b.angle,
		Segments:   segs,
		Length:     len(b.segments),
		Color:      b.color,
		Boosting:   b.boosting,
		Alive:      b.alive,
		Size:       b.Size(),
		Speed:      b.speed,
		Invincible: b.Invincible(now),
	}
}

func (s *Snake) Snapshot(now time.Time) PlayerSnapshot {
	ps := s.baseSnapshot(now)
	ps.Score = s.cash
	ps.State = s.LifeState()
	spec := WeaponCatalog[s.CurrentWeapon()]
	ammo := -1
	if spec.Ammo != AmmoNone {
		ammo = s.ammo[spec.Ammo]
	}
	ps.Weapon = &WeaponSummary{
		Type: s.CurrentWeapon(),
		Name: spec.Name,
		Ammo: ammo,
		Spin: s.spinLevel(spec, now),
	}
	return ps
}

func (c *CasualSnake) Snapshot(now time.Time) PlayerSnapshot {
	ps := c.baseSnapshot(now)
	ps.Score = c.score
	return ps
}

// BuildSnapshot assembles the outbound state in join order, detached from
// the live world: the item lists are compacted in place and orbs and
// projectiles drift through their pointers every tick.
func (w *World) BuildSnapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Tick:    w.Tick,
		Mode:    w.Mode,
		Players: make([]PlayerSnapshot, 0, len(w.order)),
		Food:    make([]Food, len(w.Food)),
		Orbs:    make([]Orb, len(w.Orbs)),
	}
	for i, f := range w.Food {
		snap.Food[i] = *f
	}
	for i, o := range w.Orbs {
		snap.Orbs[i] = *o
	}
	for _, id := range w.order {
		snap.Players = append(snap.Players, w.actors[id].Snapshot(now))
	}
	if w.Mode.Combat() {
		snap.WeaponDrops = make([]WeaponPickup, len(w.WeaponDrops))
		for i, d := range w.WeaponDrops {
			snap.WeaponDrops[i] = *d
		}
		snap.AmmoDrops = make([]AmmoPickup, len(w.AmmoDrops))
		for i, d := range w.AmmoDrops {
			snap.AmmoDrops[i] = *d
		}
		snap.Projectiles = make([]Projectile, len(w.Projectiles))
		for i, p := range w.Projectiles {
			snap.Projectiles[i] = *p
		}
	}
	return snap
}
