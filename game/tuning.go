package game

import "time"

// Game tuning constants. Everything the simulation balances on lives here
// so a tweak never requires hunting through the physics code.
const (
	// World — rectangular map, origin top-left. Head positions are clamped
	// to the boundary; projectiles despawn past it.
	WorldWidth  = 3000.0
	WorldHeight = 3000.0
	// SpawnRadius keeps fresh snakes near the world center.
	SpawnRadius = 400.0

	// Game loop
	TickRate = 60 // ticks per second (reference rate; rooms own their timers)

	// Snake movement
	SnakeBaseSpeed    = 3.5 // px per tick
	SnakeBoostFactor  = 2.0 // speed multiplier while boosting
	SnakeTurnFraction = 0.1 // fraction of the angular residual applied per tick

	// Boost gauge
	BoostMax          = 100.0
	BoostDrainPerTick = 1.0
	BoostRegenPerTick = 0.5 // half the drain rate

	// Body
	SnakeInitSegments = 3
	// DefaultSize is the collision radius floor, also substituted for any
	// item whose size was never set so distance math never sees a zero.
	DefaultSize = 8.0
	// Segment spacing scales with size: spacing = size * SegmentSpacingFactor.
	SegmentSpacingFactor = 0.8
	// Size growth: Size = DefaultSize + SizePerSqrtSegment * sqrt(segments).
	SizePerSqrtSegment = 2.0

	// Growth
	GrowthPerTick   = 0.2 // progress added per tick; 1.0 materializes a segment
	FoodGrowthUnits = 1   // segments enqueued per food item

	// Death
	FoodPerSegment    = 3    // food items scattered per body segment on death
	DeathScatterRange = 30.0 // max random offset of scattered food

	// Invincibility
	SpawnInvincibility = 3 * time.Second

	// Economy
	FoodCashValue = 1  // cash (or casual score) per food item
	OrbCashValue  = 5  // cash per orb value unit
	KillReward    = 50 // cash credited to a projectile kill's owner

	// Item populations (combat modes); regeneration tops back up to the
	// target, capped per tick so one tick never floods the room.
	FoodTarget       = 250
	OrbTarget        = 16
	WeaponDropTarget = 6
	AmmoDropTarget   = 12
	RegenPerTick     = 20

	// Items
	FoodSize    = 4.0
	OrbSize     = 10.0
	OrbMinValue = 3
	OrbMaxValue = 8
	OrbMaxDrift = 1.5 // px per tick

	// Projectiles
	ProjectileTTL  = 2 * time.Second
	ProjectileSize = 4.0
	// Body hits sever damage/SegmentsPerDamage segments (min 1).
	SegmentsPerDamage = 5

	// Rooms
	RoomCap = 100
)

// Palette assigned round-robin to players who do not pick a color.
var Palette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6",
	"#1abc9c", "#e67e22", "#e91e63", "#00bcd4", "#8bc34a",
	"#ff5722", "#607d8b", "#673ab7", "#03a9f4", "#ffeb3b",
}
