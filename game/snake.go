package game

import (
	"math"
	"math/rand"
	"time"
)

// snakeBody is the movement/growth core shared by the combat Snake and the
// casual-mode player. segments[0] is the head and mirrors X/Y.
type snakeBody struct {
	id    string
	name  string
	color string

	X, Y        float64
	segments    []Point
	angle       float64
	targetAngle float64

	boost    float64
	boosting bool
	speed    float64

	alive           bool
	invincibleUntil time.Time

	growthPending  int
	growthProgress float64
}

func newSnakeBody(id, name, color string, pos Point, angle float64, now time.Time) snakeBody {
	b := snakeBody{
		id:              id,
		name:            name,
		color:           color,
		X:               pos.X,
		Y:               pos.Y,
		angle:           angle,
		targetAngle:     angle,
		boost:           BoostMax,
		alive:           true,
		invincibleUntil: now.Add(SpawnInvincibility),
	}
	b.resetSegments()
	return b
}

// resetSegments lays out the initial chain trailing behind the head,
// opposite the current heading.
func (b *snakeBody) resetSegments() {
	spacing := DefaultSize * SegmentSpacingFactor
	b.segments = make([]Point, SnakeInitSegments)
	for i := range b.segments {
		b.segments[i] = Point{
			X: b.X - math.Cos(b.angle)*spacing*float64(i),
			Y: b.Y - math.Sin(b.angle)*spacing*float64(i),
		}
	}
}

func (b *snakeBody) ID() string       { return b.id }
func (b *snakeBody) Name() string     { return b.name }
func (b *snakeBody) Color() string    { return b.color }
func (b *snakeBody) Alive() bool      { return b.alive }
func (b *snakeBody) Head() Point      { return b.segments[0] }
func (b *snakeBody) Segments() []Point { return b.segments }

func (b *snakeBody) Invincible(now time.Time) bool {
	return now.Before(b.invincibleUntil)
}

// Size is the collision radius, a square-root function of segment count so
// long snakes fatten sub-linearly.
func (b *snakeBody) Size() float64 {
	return DefaultSize + SizePerSqrtSegment*math.Sqrt(float64(len(b.segments)))
}

func (b *snakeBody) segmentSpacing() float64 {
	return b.Size() * SegmentSpacingFactor
}

// step advances one tick of movement and growth. Steering eases toward the
// buffered target angle instead of snapping; the body is a follow-the-leader
// chain where a segment only moves once it trails its predecessor by more
// than the spacing.
func (b *snakeBody) step(in Input, now time.Time) {
	if in.HasAngle {
		b.targetAngle = in.TargetAngle
	}
	b.angle += angleDiff(b.angle, b.targetAngle) * SnakeTurnFraction

	boosting := in.Boost && b.boost > 0
	if boosting {
		b.boost = math.Max(0, b.boost-BoostDrainPerTick)
	} else {
		b.boost = math.Min(BoostMax, b.boost+BoostRegenPerTick)
	}
	b.boosting = boosting

	speed := SnakeBaseSpeed
	if boosting {
		speed *= SnakeBoostFactor
	}
	b.speed = speed

	b.X = clamp(b.X+math.Cos(b.angle)*speed, 0, WorldWidth)
	b.Y = clamp(b.Y+math.Sin(b.angle)*speed, 0, WorldHeight)
	b.segments[0] = Point{X: b.X, Y: b.Y}

	spacing := b.segmentSpacing()
	for i := 1; i < len(b.segments); i++ {
		lead := b.segments[i-1]
		seg := b.segments[i]
		dx := seg.X - lead.X
		dy := seg.Y - lead.Y
		d := math.Hypot(dx, dy)
		if d > spacing {
			// Slide along the connecting line to restore exact spacing.
			b.segments[i] = Point{
				X: lead.X + dx/d*spacing,
				Y: lead.Y + dy/d*spacing,
			}
		}
	}

	b.advanceGrowth(spacing)
}

// advanceGrowth materializes at most one queued segment per tick, gated by
// the fractional progress accumulator crossing 1.0.
func (b *snakeBody) advanceGrowth(spacing float64) {
	if b.growthPending <= 0 {
		return
	}
	b.growthProgress += GrowthPerTick
	if b.growthProgress < 1 {
		return
	}
	b.growthProgress = 0
	b.growthPending--
	b.appendSegment(spacing)
}

// appendSegment extends the tail along its current trailing direction.
func (b *snakeBody) appendSegment(spacing float64) {
	n := len(b.segments)
	tail := b.segments[n-1]
	dx, dy := -math.Cos(b.angle), -math.Sin(b.angle)
	if n >= 2 {
		prev := b.segments[n-2]
		d := math.Hypot(tail.X-prev.X, tail.Y-prev.Y)
		if d > 0 {
			dx = (tail.X - prev.X) / d
			dy = (tail.Y - prev.Y) / d
		}
	}
	b.segments = append(b.segments, Point{X: tail.X + dx*spacing, Y: tail.Y + dy*spacing})
}

func (b *snakeBody) enqueueGrowth(n int) {
	if n > 0 {
		b.growthPending += n
	}
}

// convertToFoodItems turns the whole chain into scattered food, returning
// mass to the world. Called on every death path.
func (b *snakeBody) convertToFoodItems(rng *rand.Rand) []*Food {
	out := make([]*Food, 0, len(b.segments)*FoodPerSegment)
	for _, seg := range b.segments {
		for i := 0; i < FoodPerSegment; i++ {
			out = append(out, newFoodAt(Point{
				X: seg.X + (rng.Float64()-0.5)*2*DeathScatterRange,
				Y: seg.Y + (rng.Float64()-0.5)*2*DeathScatterRange,
			}, b.color))
		}
	}
	return out
}

// Snake is the full combat-mode entity: body physics plus wager economy and
// weapon inventory.
type Snake struct {
	snakeBody

	wager     int
	cash      int
	banked    int
	cashedOut bool

	weapons []WeaponType
	current int
	ammo    map[AmmoType]int
	fire    fireState
}

func NewSnake(id, name, color string, pos Point, angle float64, wager int, now time.Time) *Snake {
	return &Snake{
		snakeBody: newSnakeBody(id, name, color, pos, angle, now),
		wager:     wager,
		cash:      wager,
		weapons:   []WeaponType{WeaponPistol},
		ammo:      make(map[AmmoType]int),
		fire:      newFireState(),
	}
}

// Competing reports whether the snake is alive and still accruing; a
// cashed-out snake spectates until respawn.
func (s *Snake) Competing() bool { return s.alive && !s.cashedOut }

func (s *Snake) Step(in Input, now time.Time) {
	if !s.Competing() {
		return
	}
	s.step(in, now)
}

func (s *Snake) CollectFood(f *Food) {
	s.enqueueGrowth(FoodGrowthUnits)
	s.cash += FoodCashValue
}

func (s *Snake) CollectOrb(o *Orb) {
	s.enqueueGrowth(o.Value)
	s.cash += o.Value * OrbCashValue
}

func (s *Snake) Score() int { return s.cash }
func (s *Snake) Cash() int  { return s.cash }
func (s *Snake) Wager() int { return s.wager }

// die marks the snake dead; the caller owns converting the body to food
// before the segment chain is reset.
func (s *Snake) die() { s.alive = false }

// removeSegments severs a contiguous run starting at index from (projectile
// body hit). The head is never removed here; head hits are instant kills.
func (s *Snake) removeSegments(from, count int) {
	if from < 1 {
		from = 1
	}
	if from >= len(s.segments) || count <= 0 {
		return
	}
	end := from + count
	if end > len(s.segments) {
		end = len(s.segments)
	}
	s.segments = append(s.segments[:from], s.segments[end:]...)
}

// CasualSnake is the lighter non-competitive entity used in casual rooms:
// same chain physics, plain score, no wager, no weapons, no death.
type CasualSnake struct {
	snakeBody
	score int
}

func NewCasualSnake(id, name, color string, pos Point, angle float64, now time.Time) *CasualSnake {
	return &CasualSnake{snakeBody: newSnakeBody(id, name, color, pos, angle, now)}
}

func (c *CasualSnake) Step(in Input, now time.Time) {
	if !c.alive {
		return
	}
	c.step(in, now)
}

func (c *CasualSnake) CollectFood(f *Food) {
	c.enqueueGrowth(FoodGrowthUnits)
	c.score += FoodCashValue
}

func (c *CasualSnake) CollectOrb(o *Orb) {
	c.enqueueGrowth(o.Value)
	c.score += o.Value
}

func (c *CasualSnake) Score() int { return c.score }
