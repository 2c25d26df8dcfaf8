package game

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// maxSpreadRadians is the aim jitter applied at accuracy 0.
const maxSpreadRadians = 0.35

// Projectile is a live round owned by the snake that fired it.
type Projectile struct {
	ID        string     `json:"id"`
	Pos       Point      `json:"pos"`
	Vel       Point      `json:"vel"`
	Owner     string     `json:"owner"`
	Weapon    WeaponType `json:"weapon"`
	Damage    int        `json:"damage"`
	CreatedAt time.Time  `json:"-"`
}

// fireState is per-snake server-side firing bookkeeping. The server, not
// the client, decides whether a shot is accepted.
type fireState struct {
	lastShot map[WeaponType]time.Time

	// burst weapons: rounds still owed from an accepted request
	burstLeft   int
	burstTarget Point
	nextBurstAt time.Time
	burstLockedUntil time.Time

	// spin-up weapons: when the trigger was first held; zero while released
	holdStart time.Time
}

func newFireState() fireState {
	return fireState{lastShot: make(map[WeaponType]time.Time)}
}

// CurrentWeapon returns the equipped weapon type.
func (s *Snake) CurrentWeapon() WeaponType { return s.weapons[s.current] }

// SwitchWeapon equips the inventory slot, rejecting slots the snake does not
// hold; the current weapon is unchanged on rejection.
func (s *Snake) SwitchWeapon(slot int) bool {
	if slot < 0 || slot >= len(s.weapons) {
		return false
	}
	s.current = slot
	return true
}

// AddWeapon appends a weapon slot unless already held.
func (s *Snake) AddWeapon(t WeaponType) {
	for _, w := range s.weapons {
		if w == t {
			return
		}
	}
	s.weapons = append(s.weapons, t)
}

// AddAmmo credits a quantity, capped at the largest magazine any catalog
// weapon carries for that type.
func (s *Snake) AddAmmo(t AmmoType, qty int) {
	cap := ammoCapacity(t)
	s.ammo[t] += qty
	if s.ammo[t] > cap {
		s.ammo[t] = cap
	}
}

func (s *Snake) Ammo(t AmmoType) int { return s.ammo[t] }

func ammoCapacity(t AmmoType) int {
	max := 0
	for _, spec := range WeaponCatalog {
		if spec.Ammo == t && spec.MaxAmmo > max {
			max = spec.MaxAmmo
		}
	}
	return max
}

// spinLevel maps held-trigger duration onto 0..MaxSpin.
func (s *Snake) spinLevel(spec WeaponSpec, now time.Time) int {
	if spec.SpinUp == nil || s.fire.holdStart.IsZero() {
		return 0
	}
	frac := float64(now.Sub(s.fire.holdStart)) / float64(spec.SpinUp.RampTime)
	return int(clamp(frac, 0, 1) * float64(spec.SpinUp.MaxSpin))
}

// effectiveInterval is the per-weapon minimum inter-shot gap, shrunk by spin
// for ramp-up weapons.
func (s *Snake) effectiveInterval(spec WeaponSpec, now time.Time) time.Duration {
	iv := spec.FireInterval
	if spec.SpinUp != nil {
		level := s.spinLevel(spec, now)
		frac := float64(level) / float64(spec.SpinUp.MaxSpin)
		iv = time.Duration(float64(spec.FireInterval) - frac*float64(spec.FireInterval-spec.SpinUp.MinInterval))
	}
	return iv
}

// applyFire processes one snake's fire intent for this tick: rate gate,
// ammo, burst scheduling and spin-up all resolve here, server-side.
func (w *World) applyFire(s *Snake, in Input) {
	spec := WeaponCatalog[s.CurrentWeapon()]

	wantFire := in.Shoot || (spec.Sustained && in.Firing)
	if spec.SpinUp != nil {
		// Spin tracks the held trigger and resets the moment it is released.
		if in.Shoot || in.Firing {
			if s.fire.holdStart.IsZero() {
				s.fire.holdStart = w.now
			}
		} else {
			s.fire.holdStart = time.Time{}
		}
	}

	// Rounds still owed from an accepted burst fire regardless of intent.
	if s.fire.burstLeft > 0 {
		if !w.now.Before(s.fire.nextBurstAt) {
			if w.emitShot(s, spec, s.fire.burstTarget) {
				s.fire.burstLeft--
				s.fire.nextBurstAt = w.now.Add(spec.Burst.Delay)
				if s.fire.burstLeft == 0 {
					s.fire.burstLockedUntil = w.now.Add(spec.Burst.Cooldown)
				}
			} else {
				// Ran dry mid-burst; abandon the rest.
				s.fire.burstLeft = 0
				s.fire.burstLockedUntil = w.now.Add(spec.Burst.Cooldown)
			}
		}
		return
	}

	if !wantFire {
		return
	}

	if spec.Burst != nil {
		if w.now.Before(s.fire.burstLockedUntil) {
			return
		}
		if w.emitShot(s, spec, in.FireTarget) {
			s.fire.burstLeft = spec.Burst.Count - 1
			s.fire.burstTarget = in.FireTarget
			s.fire.nextBurstAt = w.now.Add(spec.Burst.Delay)
		}
		return
	}

	last, ok := s.fire.lastShot[s.CurrentWeapon()]
	if ok && w.now.Sub(last) < s.effectiveInterval(spec, w.now) {
		return // rejected: faster than the server-side rate limit
	}
	w.emitShot(s, spec, in.FireTarget)
}

// emitShot consumes ammo and spawns the projectile(s) for one accepted
// shot. Returns false without consuming anything when required ammo is
// empty.
func (w *World) emitShot(s *Snake, spec WeaponSpec, target Point) bool {
	if spec.Ammo != AmmoNone {
		if s.ammo[spec.Ammo] <= 0 {
			return false
		}
		s.ammo[spec.Ammo]--
	}
	s.fire.lastShot[s.CurrentWeapon()] = w.now

	head := s.Head()
	base := math.Atan2(target.Y-head.Y, target.X-head.X)
	pellets := spec.Pellets
	if pellets < 1 {
		pellets = 1
	}
	spread := (1 - spec.Accuracy) * maxSpreadRadians
	for i := 0; i < pellets; i++ {
		ang := base + (w.rng.Float64()-0.5)*2*spread
		w.Projectiles = append(w.Projectiles, &Projectile{
			ID:     uuid.NewString(),
			Pos:    head,
			Vel:    Point{X: math.Cos(ang) * spec.ProjectileSpeed, Y: math.Sin(ang) * spec.ProjectileSpeed},
			Owner:  s.id,
			Weapon: s.CurrentWeapon(),
			Damage: spec.Damage,
			CreatedAt: w.now,
		})
	}
	return true
}

// stepProjectiles advances every live round and resolves hits. A projectile
// dies on bounds exit, TTL expiry, or its first hit.
func (w *World) stepProjectiles() {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		if p.Pos.X < 0 || p.Pos.X > WorldWidth || p.Pos.Y < 0 || p.Pos.Y > WorldHeight {
			continue
		}
		if w.now.Sub(p.CreatedAt) > ProjectileTTL {
			continue
		}
		if w.resolveProjectile(p) {
			continue
		}
		kept = append(kept, p)
	}
	w.Projectiles = kept
}

// resolveProjectile tests a round against every competing snake except its
// owner (friendly fire never resolves). Head hit: instant kill, owner
// credited. Body hit: a damage-proportional run of segments is severed.
func (w *World) resolveProjectile(p *Projectile) bool {
	for _, id := range w.order {
		s := w.combatants[id]
		if s == nil || !s.Competing() || s.id == p.Owner {
			continue
		}
		if s.Invincible(w.now) {
			continue
		}
		r := s.Size() + ProjectileSize
		rr := r * r
		if distSq(p.Pos, s.segments[0]) < rr {
			w.killSnake(s)
			w.creditKill(p.Owner)
			return true
		}
		for i := 1; i < len(s.segments); i++ {
			if distSq(p.Pos, s.segments[i]) < rr {
				severed := p.Damage / SegmentsPerDamage
				if severed < 1 {
					severed = 1
				}
				s.removeSegments(i, severed)
				return true
			}
		}
	}
	return false
}

func (w *World) creditKill(ownerID string) {
	if owner := w.combatants[ownerID]; owner != nil && owner.Competing() {
		owner.cash += KillReward
	}
}
