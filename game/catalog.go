package game

import "time"

type WeaponType string

const (
	WeaponPistol  WeaponType = "pistol"
	WeaponShotgun WeaponType = "shotgun"
	WeaponBurst   WeaponType = "burst_rifle"
	WeaponSMG     WeaponType = "smg"
	WeaponSniper  WeaponType = "sniper"
	WeaponMinigun WeaponType = "minigun"
)

type AmmoType string

const (
	AmmoNone   AmmoType = ""
	AmmoLight  AmmoType = "light"
	AmmoHeavy  AmmoType = "heavy"
	AmmoShells AmmoType = "shells"
)

// BurstSpec configures weapons that emit a fixed-size burst per accepted
// fire request.
type BurstSpec struct {
	Count    int           // rounds per burst
	Delay    time.Duration // delay between rounds inside a burst
	Cooldown time.Duration // lockout after the burst completes
}

// SpinUpSpec configures sustained-fire weapons whose rate ramps while the
// trigger is held. The effective interval shrinks linearly from the base
// FireInterval to MinInterval over RampTime, then holds at MaxSpin.
type SpinUpSpec struct {
	RampTime    time.Duration
	MaxSpin     int
	MinInterval time.Duration
}

// WeaponSpec is one static catalog row. MaxAmmo < 0 means unlimited.
type WeaponSpec struct {
	Name            string
	Damage          int
	MaxAmmo         int
	FireInterval    time.Duration
	ProjectileSpeed float64
	Accuracy        float64 // 0..1; 1 is perfectly straight
	Ammo            AmmoType
	Pellets         int // projectiles per shot (shotgun); 0 means 1
	Sustained       bool
	Burst           *BurstSpec
	SpinUp          *SpinUpSpec
}

// AmmoSpec describes a pickup of one ammo type.
type AmmoSpec struct {
	MinQty int
	MaxQty int
	Rarity int // relative spawn weight
}

// WeaponCatalog is static, read-only configuration consumed by the combat
// subsystem. All rate limiting is driven by FireInterval server-side.
var WeaponCatalog = map[WeaponType]WeaponSpec{
	WeaponPistol: {
		Name:            "Pistol",
		Damage:          10,
		MaxAmmo:         -1,
		FireInterval:    250 * time.Millisecond,
		ProjectileSpeed: 14,
		Accuracy:        0.95,
	},
	WeaponShotgun: {
		Name:            "Shotgun",
		Damage:          8,
		MaxAmmo:         24,
		FireInterval:    800 * time.Millisecond,
		ProjectileSpeed: 11,
		Accuracy:        0.7,
		Ammo:            AmmoShells,
		Pellets:         5,
	},
	WeaponBurst: {
		Name:            "Burst Rifle",
		Damage:          12,
		MaxAmmo:         60,
		FireInterval:    60 * time.Millisecond,
		ProjectileSpeed: 16,
		Accuracy:        0.9,
		Ammo:            AmmoLight,
		Burst:           &BurstSpec{Count: 3, Delay: 60 * time.Millisecond, Cooldown: 350 * time.Millisecond},
	},
	WeaponSMG: {
		Name:            "SMG",
		Damage:          6,
		MaxAmmo:         120,
		FireInterval:    90 * time.Millisecond,
		ProjectileSpeed: 15,
		Accuracy:        0.85,
		Ammo:            AmmoLight,
		Sustained:       true,
	},
	WeaponSniper: {
		Name:            "Sniper",
		Damage:          40,
		MaxAmmo:         10,
		FireInterval:    1500 * time.Millisecond,
		ProjectileSpeed: 26,
		Accuracy:        1.0,
		Ammo:            AmmoHeavy,
	},
	WeaponMinigun: {
		Name:            "Minigun",
		Damage:          5,
		MaxAmmo:         200,
		FireInterval:    180 * time.Millisecond,
		ProjectileSpeed: 14,
		Accuracy:        0.8,
		Ammo:            AmmoLight,
		Sustained:       true,
		SpinUp:          &SpinUpSpec{RampTime: 2 * time.Second, MaxSpin: 5, MinInterval: 45 * time.Millisecond},
	},
}

// AmmoCatalog drives ammo pickup generation.
var AmmoCatalog = map[AmmoType]AmmoSpec{
	AmmoLight:  {MinQty: 20, MaxQty: 40, Rarity: 6},
	AmmoShells: {MinQty: 4, MaxQty: 10, Rarity: 3},
	AmmoHeavy:  {MinQty: 2, MaxQty: 5, Rarity: 1},
}

// DroppableWeapons are the types weapon pickups can carry; the pistol is the
// spawn weapon and never drops.
var DroppableWeapons = []WeaponType{
	WeaponShotgun, WeaponBurst, WeaponSMG, WeaponSniper, WeaponMinigun,
}
