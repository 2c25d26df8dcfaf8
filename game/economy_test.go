package game

import (
	"errors"
	"testing"
	"time"
)

func TestCashoutBanksAndFreezesAccrual(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	if s.cash != 10 {
		t.Fatalf("joining cash = %d, want the wager 10", s.cash)
	}
	s.wager = 50
	s.cash = 50
	// Accrue to 120 through pickups.
	for i := 0; i < 70; i++ {
		s.CollectFood(&Food{Size: FoodSize})
	}
	if s.cash != 120 {
		t.Fatalf("cash after pickups = %d, want 120", s.cash)
	}

	banked, err := s.Cashout()
	if err != nil {
		t.Fatalf("cashout: %v", err)
	}
	if banked != 120 || s.Banked() != 120 {
		t.Fatalf("banked = %d/%d, want 120", banked, s.Banked())
	}
	if s.LifeState() != "spectating" {
		t.Fatalf("state after cashout = %q, want spectating", s.LifeState())
	}

	// Further pickups are impossible: collision skips spectators.
	w.Food = []*Food{newFoodAt(Point{X: s.X, Y: s.Y}, "#fff")}
	w.collectPickups()
	if s.cash != 120 {
		t.Fatalf("spectating snake accrued: cash = %d", s.cash)
	}
}

func TestCashoutIsIrreversibleForTheLife(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	if _, err := s.Cashout(); err != nil {
		t.Fatalf("first cashout: %v", err)
	}
	if _, err := s.Cashout(); !errors.Is(err, ErrCashedOut) {
		t.Fatalf("second cashout error = %v, want ErrCashedOut", err)
	}
}

func TestCashoutWhileDeadRejected(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	w.killSnake(s)
	cash := s.cash
	if _, err := s.Cashout(); !errors.Is(err, ErrDead) {
		t.Fatalf("cashout while dead error = %v, want ErrDead", err)
	}
	if s.cash != cash || s.Banked() != 0 {
		t.Fatalf("rejected cashout mutated state")
	}
}

func TestRespawnRestartsTheLife(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	s.wager = 50
	s.cash = 120
	if _, err := s.Cashout(); err != nil {
		t.Fatalf("cashout: %v", err)
	}

	if err := w.respawnSnake(s); err != nil {
		t.Fatalf("respawn after cashout: %v", err)
	}
	if s.LifeState() != "competing" {
		t.Fatalf("state after respawn = %q", s.LifeState())
	}
	if s.cash != 50 {
		t.Fatalf("respawn cash = %d, want the wager 50", s.cash)
	}
	if s.Banked() != 120 {
		t.Fatalf("banked lost on respawn: %d", s.Banked())
	}
	if len(s.segments) != SnakeInitSegments {
		t.Fatalf("respawn segments = %d, want %d", len(s.segments), SnakeInitSegments)
	}
	if !s.Invincible(w.now) {
		t.Fatalf("respawn without an invincibility window")
	}
	if s.CurrentWeapon() != WeaponPistol || len(s.weapons) != 1 {
		t.Fatalf("gear survived respawn: %v", s.weapons)
	}
}

func TestRespawnWhileCompetingRejected(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	if err := w.respawnSnake(s); !errors.Is(err, ErrStillCompeting) {
		t.Fatalf("respawn while competing error = %v", err)
	}
}

func TestRespawnFromDeath(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	w.killSnake(s)
	if s.LifeState() != "dead" {
		t.Fatalf("state after kill = %q", s.LifeState())
	}
	if err := w.respawnSnake(s); err != nil {
		t.Fatalf("respawn from death: %v", err)
	}
	if !s.alive || s.LifeState() != "competing" {
		t.Fatalf("respawn did not revive: %q", s.LifeState())
	}
}

func TestSpectatorIsFrozen(t *testing.T) {
	w := arenaWorld()
	s := addSnakeAt(w, "a", 500, 500)
	if _, err := s.Cashout(); err != nil {
		t.Fatalf("cashout: %v", err)
	}
	x, y := s.X, s.Y
	s.Step(Input{TargetAngle: 1, HasAngle: true, Boost: true, SwitchSlot: -1}, w.now.Add(time.Second))
	if s.X != x || s.Y != y {
		t.Fatalf("spectating snake moved")
	}
}
