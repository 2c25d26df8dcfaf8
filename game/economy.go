package game

import "errors"

// Wager economy state machine. For any snake exactly one of three states
// holds: competing (alive, accruing), spectating (cashed out, frozen until
// respawn), dead (awaiting respawn).

var (
	ErrDead           = errors.New("cashout rejected: snake is dead")
	ErrCashedOut      = errors.New("cashout rejected: already cashed out this life")
	ErrStillCompeting = errors.New("respawn rejected: snake is still competing")
)

// LifeState names the current economy state, for snapshots and logs.
func (s *Snake) LifeState() string {
	switch {
	case !s.alive:
		return "dead"
	case s.cashedOut:
		return "spectating"
	default:
		return "competing"
	}
}

// Cashout banks the current balance and flips the snake into spectating.
// Irreversible for this life: no further accrual until respawn. Only valid
// while alive and competing.
func (s *Snake) Cashout() (int, error) {
	if !s.alive {
		return 0, ErrDead
	}
	if s.cashedOut {
		return 0, ErrCashedOut
	}
	s.cashedOut = true
	s.banked += s.cash
	return s.cash, nil
}

// Banked is the total cashed out across lives.
func (s *Snake) Banked() int { return s.banked }

// respawnSnake starts a fresh life: new spawn pose, segments reset to the
// initial chain, balance back to the original wager, spectating cleared,
// fresh invincibility window. Weapons reset to the spawn pistol — gear does
// not survive a life.
func (w *World) respawnSnake(s *Snake) error {
	if s.Competing() {
		return ErrStillCompeting
	}
	pos, angle := w.spawnPose()
	s.snakeBody = newSnakeBody(s.id, s.name, s.color, pos, angle, w.now)
	s.cash = s.wager
	s.cashedOut = false
	s.weapons = []WeaponType{WeaponPistol}
	s.current = 0
	s.ammo = make(map[AmmoType]int)
	s.fire = newFireState()
	return nil
}
