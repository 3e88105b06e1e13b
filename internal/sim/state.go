package sim

import "github.com/tomz197/galaga/internal/entity"

// PlayerState tracks whether the player ship is alive and when it was last shot.
type PlayerState struct {
	Alive     bool
	LastDeath float64 // Simulated seconds, -1 if not shot since last spawn
}

// Shot records the player's death at the given time.
func (p *PlayerState) Shot(at float64) {
	p.Alive = false
	p.LastDeath = at
}

// Spawned marks the player alive again.
func (p *PlayerState) Spawned() {
	p.Alive = true
	p.LastDeath = -1
}

// Counters is the process-wide mutable game state. Each field has a single
// writer per tick, fixed by the pipeline order.
type Counters struct {
	EnemyCount int         // Live enemies, never above config.EnemyMax
	Player     PlayerState // Player alive flag and last death time
	Ticks      uint64      // Ticks simulated so far
	Elapsed    float64     // Simulated seconds (Ticks * TimeStep)
}

func newCounters() Counters {
	return Counters{
		Player: PlayerState{LastDeath: -1},
	}
}

// Input is the already-resolved player input for one tick.
type Input struct {
	Intent int  // Horizontal intent: -1 left, 0 none, 1 right
	Fire   bool // Fire button held this tick
}

// Bounds is the window size in world units. The origin is the window center.
type Bounds struct {
	Width, Height float64
}

// Sprite is the render facet of one entity.
type Sprite struct {
	ID    uint64
	Role  entity.Role
	X, Y  float64 // Center, Y up
	Z     float64 // Stacking depth
	W, H  float64 // Size after scale
	Frame int     // Animation frame (explosions)
}
