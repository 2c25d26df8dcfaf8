package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// Food is a single growth pellet.
type Food struct {
	ID    string  `json:"id"`
	Pos   Point   `json:"pos"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
}

// Orb is a richer drifting pickup worth multiple growth/cash units.
type Orb struct {
	ID    string  `json:"id"`
	Pos   Point   `json:"pos"`
	Vel   Point   `json:"vel"`
	Size  float64 `json:"size"`
	Value int     `json:"value"`
}

// WeaponPickup grants a weapon slot when collected.
type WeaponPickup struct {
	ID        string     `json:"id"`
	Pos       Point      `json:"pos"`
	Type      WeaponType `json:"type"`
	Collected bool       `json:"-"`
}

// AmmoPickup grants a quantity of one ammo type.
type AmmoPickup struct {
	ID        string   `json:"id"`
	Pos       Point    `json:"pos"`
	Type      AmmoType `json:"type"`
	Qty       int      `json:"qty"`
	Collected bool     `json:"-"`
}

func newFoodAt(pos Point, color string) *Food {
	return &Food{
		ID:    uuid.NewString(),
		Pos:   Point{X: clamp(pos.X, 0, WorldWidth), Y: clamp(pos.Y, 0, WorldHeight)},
		Color: color,
		Size:  FoodSize,
	}
}

func randomPoint(rng *rand.Rand) Point {
	return Point{X: rng.Float64() * WorldWidth, Y: rng.Float64() * WorldHeight}
}

func randomFood(rng *rand.Rand) *Food {
	return newFoodAt(randomPoint(rng), Palette[rng.Intn(len(Palette))])
}

func randomOrb(rng *rand.Rand) *Orb {
	return &Orb{
		ID:    uuid.NewString(),
		Pos:   randomPoint(rng),
		Vel:   Point{X: (rng.Float64() - 0.5) * 2 * OrbMaxDrift, Y: (rng.Float64() - 0.5) * 2 * OrbMaxDrift},
		Size:  OrbSize,
		Value: OrbMinValue + rng.Intn(OrbMaxValue-OrbMinValue+1),
	}
}

func randomWeaponPickup(rng *rand.Rand) *WeaponPickup {
	return &WeaponPickup{
		ID:   uuid.NewString(),
		Pos:  randomPoint(rng),
		Type: DroppableWeapons[rng.Intn(len(DroppableWeapons))],
	}
}

// randomAmmoPickup samples an ammo type by catalog rarity weight.
func randomAmmoPickup(rng *rand.Rand) *AmmoPickup {
	total := 0
	for _, spec := range AmmoCatalog {
		total += spec.Rarity
	}
	roll := rng.Intn(total)
	for typ, spec := range AmmoCatalog {
		roll -= spec.Rarity
		if roll < 0 {
			return &AmmoPickup{
				ID:   uuid.NewString(),
				Pos:  randomPoint(rng),
				Type: typ,
				Qty:  spec.MinQty + rng.Intn(spec.MaxQty-spec.MinQty+1),
			}
		}
	}
	return nil // unreachable: catalog is never empty
}

// regenerateItems tops pickup populations back up to their targets, capped
// per tick, and drifts the orbs. Combat modes only; casual rooms keep a food
// supply and nothing else.
func (w *World) regenerateItems() {
	budget := RegenPerTick
	for len(w.Food) < FoodTarget && budget > 0 {
		w.Food = append(w.Food, randomFood(w.rng))
		budget--
	}
	if !w.Mode.Combat() {
		return
	}
	for len(w.Orbs) < OrbTarget && budget > 0 {
		w.Orbs = append(w.Orbs, randomOrb(w.rng))
		budget--
	}
	for len(w.WeaponDrops) < WeaponDropTarget && budget > 0 {
		w.WeaponDrops = append(w.WeaponDrops, randomWeaponPickup(w.rng))
		budget--
	}
	for len(w.AmmoDrops) < AmmoDropTarget && budget > 0 {
		w.AmmoDrops = append(w.AmmoDrops, randomAmmoPickup(w.rng))
		budget--
	}

	for _, o := range w.Orbs {
		o.Pos.X += o.Vel.X
		o.Pos.Y += o.Vel.Y
		// Bounce off the world edges.
		if o.Pos.X < 0 || o.Pos.X > WorldWidth {
			o.Vel.X = -o.Vel.X
			o.Pos.X = clamp(o.Pos.X, 0, WorldWidth)
		}
		if o.Pos.Y < 0 || o.Pos.Y > WorldHeight {
			o.Vel.Y = -o.Vel.Y
			o.Pos.Y = clamp(o.Pos.Y, 0, WorldHeight)
		}
	}
}
