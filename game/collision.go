package game

// Collision resolution. All phases walk actors in join order — the
// documented tie-break for simultaneous overlaps: earlier joiners are
// evaluated first, and a death in an earlier phase removes the snake from
// the later phases of the same tick.

// eligible returns the actor if it participates in collisions this tick:
// alive, and in combat modes not cashed out.
func (w *World) eligible(id string) Actor {
	a := w.actors[id]
	if a == nil || !a.Alive() {
		return nil
	}
	if s := w.combatants[id]; s != nil && !s.Competing() {
		return nil
	}
	return a
}

// collectPickups consumes food and orbs for every eligible actor, and in
// combat modes weapon and ammo drops. Consumption requires the squared
// distance to be strictly below the squared radius sum; touching exactly at
// the boundary is not a pickup.
func (w *World) collectPickups() {
	for _, id := range w.order {
		a := w.eligible(id)
		if a == nil {
			continue
		}
		head := a.Head()
		size := a.Size()

		kept := w.Food[:0]
		for _, f := range w.Food {
			r := size + f.Size
			if distSq(head, f.Pos) < r*r {
				a.CollectFood(f)
				continue
			}
			kept = append(kept, f)
		}
		w.Food = kept

		keptOrbs := w.Orbs[:0]
		for _, o := range w.Orbs {
			r := size + o.Size
			if distSq(head, o.Pos) < r*r {
				a.CollectOrb(o)
				continue
			}
			keptOrbs = append(keptOrbs, o)
		}
		w.Orbs = keptOrbs

		s := w.combatants[id]
		if s == nil {
			continue
		}
		keptW := w.WeaponDrops[:0]
		for _, d := range w.WeaponDrops {
			r := size + DefaultSize
			if !d.Collected && distSq(head, d.Pos) < r*r {
				d.Collected = true
				s.AddWeapon(d.Type)
				continue
			}
			keptW = append(keptW, d)
		}
		w.WeaponDrops = keptW

		keptA := w.AmmoDrops[:0]
		for _, d := range w.AmmoDrops {
			r := size + DefaultSize
			if !d.Collected && distSq(head, d.Pos) < r*r {
				d.Collected = true
				s.AddAmmo(d.Type, d.Qty)
				continue
			}
			keptA = append(keptA, d)
		}
		w.AmmoDrops = keptA
	}
}

// headVsBody kills snake A when its head touches any body segment of
// another snake B. B's own head (index 0) is excluded so pure head-on
// contact is left to headVsHead. Invincibility on either side voids the
// kill; the first qualifying hit is A's cause of death for the tick.
func (w *World) headVsBody() {
	for _, aID := range w.order {
		A := w.combatants[aID]
		if A == nil || !A.Competing() || A.Invincible(w.now) {
			continue
		}
		head := A.Head()
		for _, bID := range w.order {
			if bID == aID {
				continue
			}
			B := w.combatants[bID]
			if B == nil || !B.Competing() {
				continue
			}
			r := A.Size() + B.Size()
			rr := r * r
			hit := false
			for i := 1; i < len(B.segments); i++ {
				if distSq(head, B.segments[i]) < rr {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
			if B.Invincible(w.now) {
				continue // hit on an invincible body is ignored
			}
			w.killSnake(A)
			break
		}
	}
}

// headVsHead evaluates every unordered pair once. Both sides die unless one
// alone is invincible, in which case only the unprotected side dies.
func (w *World) headVsHead() {
	for i := 0; i < len(w.order); i++ {
		A := w.combatants[w.order[i]]
		if A == nil || !A.Competing() {
			continue
		}
		for j := i + 1; j < len(w.order); j++ {
			B := w.combatants[w.order[j]]
			if B == nil || !B.Competing() {
				continue
			}
			aInv := A.Invincible(w.now)
			bInv := B.Invincible(w.now)
			if aInv && bInv {
				continue
			}
			r := A.Size() + B.Size()
			if distSq(A.Head(), B.Head()) >= r*r {
				continue
			}
			if !aInv {
				w.killSnake(A)
			}
			if !bInv {
				w.killSnake(B)
			}
			if !A.Competing() {
				break
			}
		}
	}
}

// killSnake marks a snake dead and immediately returns its mass to the room
// as scattered food. The corpse keeps nothing: its segment chain and queued
// growth are gone until respawn rebuilds the body.
func (w *World) killSnake(s *Snake) {
	if !s.alive {
		return
	}
	s.die()
	w.Food = append(w.Food, s.convertToFoodItems(w.rng)...)
	s.segments = nil
	s.growthPending = 0
	s.growthProgress = 0
}
