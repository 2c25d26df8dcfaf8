package game

import (
	"testing"
	"time"
)

const tickStep = time.Second / TickRate

// fireHeld drives one snake's trigger for a duration, advancing the world
// clock in tick-sized steps, and returns how many shots were accepted.
func fireHeld(w *World, s *Snake, target Point, hold time.Duration) int {
	before := len(w.Projectiles)
	in := Input{Firing: true, Shoot: true, FireTarget: target, SwitchSlot: -1}
	for elapsed := time.Duration(0); elapsed < hold; elapsed += tickStep {
		w.now = w.now.Add(tickStep)
		w.applyFire(s, in)
	}
	return len(w.Projectiles) - before
}

func TestFireRateIsServerLimited(t *testing.T) {
	WeaponCatalog["test_rapid"] = WeaponSpec{
		Name:            "Test Rapid",
		Damage:          5,
		MaxAmmo:         -1,
		FireInterval:    60 * time.Millisecond,
		ProjectileSpeed: 10,
		Accuracy:        1,
		Sustained:       true,
	}
	defer delete(WeaponCatalog, "test_rapid")

	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	s.weapons = []WeaponType{"test_rapid"}
	s.current = 0

	// Prime one shot so the window below measures the steady-state rate.
	w.applyFire(s, Input{Shoot: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})

	// One second of hold, spammed every tick, may accept at most
	// floor(1000/60) = 16 shots no matter how fast requests arrive.
	got := fireHeld(w, s, Point{X: 0, Y: 0}, time.Second)
	if got > 16 {
		t.Fatalf("accepted %d shots in 1s with a 60ms interval, want <= 16", got)
	}
	if got < 14 {
		t.Fatalf("accepted only %d shots in 1s, rate gate too strict", got)
	}
}

func TestSemiAutoIgnoresHeldTrigger(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500) // pistol: semi-auto, unlimited

	in := Input{Firing: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1}
	for i := 0; i < 60; i++ {
		w.now = w.now.Add(tickStep)
		w.applyFire(s, in) // held trigger but no discrete shot request
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("semi-auto weapon fired %d shots from a held trigger", len(w.Projectiles))
	}

	w.now = w.now.Add(tickStep)
	w.applyFire(s, Input{Shoot: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if len(w.Projectiles) != 1 {
		t.Fatalf("discrete shot request spawned %d projectiles, want 1", len(w.Projectiles))
	}
}

func TestEmptyAmmoRejectsWithoutConsuming(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	s.AddWeapon(WeaponSMG)
	if !s.SwitchWeapon(1) {
		t.Fatalf("switch to smg failed")
	}

	w.now = w.now.Add(tickStep)
	w.applyFire(s, Input{Shoot: true, Firing: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if len(w.Projectiles) != 0 {
		t.Fatalf("fired with empty required ammo")
	}
	if s.Ammo(AmmoLight) != 0 {
		t.Fatalf("ammo went negative: %d", s.Ammo(AmmoLight))
	}

	s.AddAmmo(AmmoLight, 5)
	w.now = w.now.Add(tickStep)
	w.applyFire(s, Input{Shoot: true, Firing: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if len(w.Projectiles) != 1 {
		t.Fatalf("accepted shot count = %d, want 1", len(w.Projectiles))
	}
	if s.Ammo(AmmoLight) != 4 {
		t.Fatalf("ammo after one shot = %d, want 4", s.Ammo(AmmoLight))
	}
}

func TestShotgunConsumesOneShellForAllPellets(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	s.AddWeapon(WeaponShotgun)
	s.SwitchWeapon(1)
	s.AddAmmo(AmmoShells, 3)

	w.now = w.now.Add(tickStep)
	w.applyFire(s, Input{Shoot: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if want := WeaponCatalog[WeaponShotgun].Pellets; len(w.Projectiles) != want {
		t.Fatalf("shotgun spawned %d pellets, want %d", len(w.Projectiles), want)
	}
	if s.Ammo(AmmoShells) != 2 {
		t.Fatalf("shells after one shot = %d, want 2", s.Ammo(AmmoShells))
	}
}

func TestFriendlyFireNeverHits(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	head := s.Head()

	// Fire at our own head every tick; projectiles spawn inside the body
	// and must never resolve against the owner.
	for i := 0; i < 200; i++ {
		w.now = w.now.Add(tickStep)
		w.applyFire(s, Input{Shoot: true, FireTarget: head, SwitchSlot: -1})
		w.stepProjectiles()
	}
	if !s.alive {
		t.Fatalf("snake killed by its own projectile")
	}
	if len(s.segments) != SnakeInitSegments {
		t.Fatalf("own projectile severed segments: %d left", len(s.segments))
	}
}

func TestHeadShotKillsAndCreditsOwner(t *testing.T) {
	w := arenaWorld()
	a := addSnakeAt(w, "a", 500, 500)
	b := addSnakeAt(w, "b", 1500, 1500)
	cash := a.cash

	w.Projectiles = []*Projectile{{
		ID: "p1", Pos: b.Head(), Owner: "a", Weapon: WeaponSniper,
		Damage: WeaponCatalog[WeaponSniper].Damage, CreatedAt: w.now,
	}}
	w.stepProjectiles()

	if b.alive {
		t.Fatalf("head shot did not kill")
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("projectile survived its hit")
	}
	if a.cash != cash+KillReward {
		t.Fatalf("owner cash = %d, want %d", a.cash, cash+KillReward)
	}
	if len(w.Food) != SnakeInitSegments*FoodPerSegment {
		t.Fatalf("kill produced %d food, want %d", len(w.Food), SnakeInitSegments*FoodPerSegment)
	}
}

func TestBodyHitSeversWithoutKilling(t *testing.T) {
	w := arenaWorld()
	b := addSnakeAt(w, "b", 1500, 1500)
	for i := 0; i < 7; i++ {
		b.appendSegment(b.segmentSpacing())
	}
	n := len(b.segments) // 10

	// Damage 5 severs exactly one segment wherever the round lands.
	w.Projectiles = []*Projectile{{
		ID: "p1", Pos: b.segments[5], Owner: "other", Weapon: WeaponPistol,
		Damage: 5, CreatedAt: w.now,
	}}
	w.stepProjectiles()

	if !b.alive {
		t.Fatalf("body hit killed the snake")
	}
	if len(b.segments) != n-1 {
		t.Fatalf("segments after body hit = %d, want %d", len(b.segments), n-1)
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("projectile survived its hit")
	}
}

func TestProjectileExpiresAndLeavesBounds(t *testing.T) {
	w := arenaWorld()
	w.Projectiles = []*Projectile{
		{ID: "old", Pos: Point{X: 1000, Y: 1000}, CreatedAt: w.now.Add(-ProjectileTTL - time.Second)},
		{ID: "out", Pos: Point{X: WorldWidth - 1, Y: 1000}, Vel: Point{X: 50}, CreatedAt: w.now},
		{ID: "live", Pos: Point{X: 1000, Y: 1000}, Vel: Point{X: 1}, CreatedAt: w.now},
	}
	w.stepProjectiles()
	if len(w.Projectiles) != 1 || w.Projectiles[0].ID != "live" {
		t.Fatalf("TTL/bounds culling kept %d projectiles", len(w.Projectiles))
	}
}

func TestInvinciblePlayerImmuneToProjectiles(t *testing.T) {
	w := arenaWorld()
	b := addSnakeAt(w, "b", 1500, 1500)
	b.invincibleUntil = w.now.Add(time.Hour)

	w.Projectiles = []*Projectile{{
		ID: "p1", Pos: b.Head(), Owner: "other", Damage: 40, CreatedAt: w.now,
	}}
	w.stepProjectiles()
	if !b.alive {
		t.Fatalf("invincible snake killed by projectile")
	}
	if len(w.Projectiles) != 1 {
		t.Fatalf("projectile consumed by an immune target")
	}
}

func TestBurstEmitsScheduledRoundsThenCoolsDown(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	s.AddWeapon(WeaponBurst)
	s.SwitchWeapon(1)
	s.AddAmmo(AmmoLight, 60)
	spec := WeaponCatalog[WeaponBurst]

	w.now = w.now.Add(tickStep)
	w.applyFire(s, Input{Shoot: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if len(w.Projectiles) != 1 {
		t.Fatalf("burst trigger fired %d rounds immediately, want 1", len(w.Projectiles))
	}

	// Remaining rounds arrive on schedule without further intent. 12 ticks
	// (~200ms) covers the burst but stays inside the cooldown window.
	for i := 0; i < 12; i++ {
		w.now = w.now.Add(tickStep)
		w.applyFire(s, NoInput)
	}
	if len(w.Projectiles) != spec.Burst.Count {
		t.Fatalf("burst delivered %d rounds, want %d", len(w.Projectiles), spec.Burst.Count)
	}

	// Re-trigger inside the cooldown is rejected.
	w.applyFire(s, Input{Shoot: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if len(w.Projectiles) != spec.Burst.Count {
		t.Fatalf("burst re-triggered inside cooldown")
	}

	w.now = w.now.Add(spec.Burst.Cooldown)
	w.applyFire(s, Input{Shoot: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	if len(w.Projectiles) != spec.Burst.Count+1 {
		t.Fatalf("burst not accepted after cooldown")
	}
}

func TestSpinUpShrinksInterval(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	s.AddWeapon(WeaponMinigun)
	s.SwitchWeapon(1)
	s.AddAmmo(AmmoLight, 200)
	spec := WeaponCatalog[WeaponMinigun]

	w.now = w.now.Add(tickStep)
	w.applyFire(s, Input{Firing: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	cold := s.effectiveInterval(spec, w.now)
	if cold != spec.FireInterval {
		t.Fatalf("cold interval = %v, want %v", cold, spec.FireInterval)
	}

	// Hold past the ramp window: the interval bottoms out and spin caps.
	w.now = w.now.Add(spec.SpinUp.RampTime + time.Second)
	w.applyFire(s, Input{Firing: true, FireTarget: Point{X: 0, Y: 0}, SwitchSlot: -1})
	hot := s.effectiveInterval(spec, w.now)
	if hot != spec.SpinUp.MinInterval {
		t.Fatalf("spun-up interval = %v, want %v", hot, spec.SpinUp.MinInterval)
	}
	if lvl := s.spinLevel(spec, w.now); lvl != spec.SpinUp.MaxSpin {
		t.Fatalf("spin level = %d, want capped at %d", lvl, spec.SpinUp.MaxSpin)
	}

	// Releasing the trigger resets the spin.
	w.now = w.now.Add(tickStep)
	w.applyFire(s, NoInput)
	if got := s.effectiveInterval(spec, w.now); got != spec.FireInterval {
		t.Fatalf("interval after release = %v, want %v", got, spec.FireInterval)
	}
}

func TestSwitchWeaponRejectsMissingSlot(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 1500, 1500)
	if s.SwitchWeapon(3) {
		t.Fatalf("switch to a slot the snake does not hold was accepted")
	}
	if s.CurrentWeapon() != WeaponPistol {
		t.Fatalf("current weapon changed on a rejected switch")
	}
}
