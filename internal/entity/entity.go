// Package entity holds the game entities: an arena of records indexed by a
// stable ID, each carrying the optional facets a system may act on.
package entity

import (
	"github.com/tomz197/galaga/internal/formation"
	"github.com/tomz197/galaga/internal/physics"
)

// ID identifies an entity. IDs are never reused within one arena.
type ID uint64

// Role tags what an entity is.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
	RoleLaserFromPlayer
	RoleLaserFromEnemy
	RoleExplosion
	RoleExplosionRequest // Marker converted into an explosion by the lifecycle
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	case RoleLaserFromPlayer:
		return "player_laser"
	case RoleLaserFromEnemy:
		return "enemy_laser"
	case RoleExplosion:
		return "explosion"
	case RoleExplosionRequest:
		return "explosion_request"
	default:
		return "unknown"
	}
}

// Position is the world position. Z is the stacking depth, not physics.
type Position struct {
	X, Y, Z float64
}

// Velocity is a unit-less direction scaled by the base speed each tick.
type Velocity struct {
	X, Y float64
}

// Scale multiplies the bounding size at collision time.
type Scale struct {
	X, Y float64
}

// UnitScale is the identity scale.
var UnitScale = Scale{X: 1, Y: 1}

// Movable marks entities moved by their velocity.
type Movable struct {
	AutoDespawn bool // Remove once past the window edge plus margin
}

// Entity is a single record in the arena. Nil facets are absent.
type Entity struct {
	ID       ID
	Role     Role
	Position Position
	Scale    Scale

	Size      *physics.Size
	Velocity  *Velocity
	Movable   *Movable
	Formation *formation.Formation // Enemies only
	Timer     *Timer               // Explosions only
	Frame     int                  // Current animation frame
}

// Box returns the collision box of the entity. ok is false when the entity
// has no bounding size.
func (e *Entity) Box() (box physics.Box, ok bool) {
	if e.Size == nil {
		return physics.Box{}, false
	}
	size := e.Size.Scaled(e.Scale.X, e.Scale.Y)
	return physics.NewBox(e.Position.X, e.Position.Y, size), true
}

// Timer is a repeating timer counted in whole ticks.
type Timer struct {
	Period  int // Ticks per repeat
	elapsed int
}

// NewTimer creates a repeating timer. Periods below one tick are raised to one.
func NewTimer(period int) *Timer {
	if period < 1 {
		period = 1
	}
	return &Timer{Period: period}
}

// Tick advances the timer by one tick and reports whether it completed a repeat.
func (t *Timer) Tick() bool {
	t.elapsed++
	if t.elapsed >= t.Period {
		t.elapsed -= t.Period
		return true
	}
	return false
}
