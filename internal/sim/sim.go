// Package sim runs the game simulation: a fixed tick pipeline that moves
// entities, advances formations, resolves laser hits and applies the
// resulting spawns and despawns.
package sim

import (
	"io"
	"math"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/formation"
	"github.com/tomz197/galaga/internal/physics"
)

// Options configures a Simulation.
type Options struct {
	Bounds Bounds      // Zero means config.WindowWidth x config.WindowHeight
	Seed   int64       // Seed for spawn layout and enemy fire
	Logger *log.Logger // Nil discards logs
}

// stage is one named step of the tick pipeline.
type stage struct {
	name string
	run  func(s *Simulation)
}

// pipeline is the fixed order every tick runs in.
// Destructions are applied at the two apply stages, so no entity survives
// past the tick it was marked in.
var pipeline = []stage{
	{"player_intent", (*Simulation).playerIntentSystem},
	{"player_movement", (*Simulation).playerMovementSystem},
	{"player_fire", (*Simulation).playerFireSystem},
	{"enemy_spawn", (*Simulation).enemySpawnSystem},
	{"enemy_fire", (*Simulation).enemyFireSystem},
	{"movable", (*Simulation).movableSystem},
	{"formation", (*Simulation).formationSystem},
	{"laser_hit_enemy", (*Simulation).playerLaserHitEnemySystem},
	{"laser_hit_player", (*Simulation).enemyLaserHitPlayerSystem},
	{"apply", (*Simulation).applySystem},
	{"explosion_to_spawn", (*Simulation).explosionToSpawnSystem},
	{"explosion_animation", (*Simulation).explosionAnimationSystem},
	{"apply", (*Simulation).applySystem},
}

// Pipeline returns the stage names in the order Tick runs them.
func Pipeline() []string {
	names := make([]string, len(pipeline))
	for i, st := range pipeline {
		names[i] = st.name
	}
	return names
}

// Simulation owns the entity arena and the game counters.
// It is not safe for concurrent use.
type Simulation struct {
	arena    *entity.Arena
	maker    *formation.Maker
	rng      *rand.Rand
	bounds   Bounds
	logger   *log.Logger
	counters Counters

	input    Input
	prevFire bool

	spawnTimer      *entity.Timer
	explosionPeriod int

	// Reusable per-tick buffers
	players  []*entity.Entity
	lasers   []*entity.Entity
	targets  []*entity.Entity
	consumed map[entity.ID]struct{}
}

// New creates a simulation with no entities. The player is not spawned;
// call SpawnPlayer.
func New(opts Options) *Simulation {
	bounds := opts.Bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = Bounds{Width: config.WindowWidth, Height: config.WindowHeight}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	return &Simulation{
		arena:           entity.NewArena(),
		maker:           formation.NewMaker(rng, config.BaseSpeed, config.EnemySpawnMargin, config.FormationMembersMax),
		rng:             rng,
		bounds:          bounds,
		logger:          logger,
		counters:        newCounters(),
		spawnTimer:      entity.NewTimer(ticksFor(config.EnemySpawnInterval)),
		explosionPeriod: ticksFor(config.ExplosionFramePeriod),
		consumed:        make(map[entity.ID]struct{}),
	}
}

// ticksFor converts a period in seconds to whole ticks.
func ticksFor(seconds float64) int {
	return int(math.Round(seconds / config.TimeStep))
}

// Tick advances the simulation by one fixed time step.
func (s *Simulation) Tick(in Input) {
	s.input = in
	s.counters.Ticks++
	s.counters.Elapsed = float64(s.counters.Ticks) * config.TimeStep

	for _, st := range pipeline {
		st.run(s)
	}

	s.prevFire = in.Fire
}

// Counters returns a copy of the game counters.
func (s *Simulation) Counters() Counters {
	return s.counters
}

// Player returns the player state.
func (s *Simulation) Player() PlayerState {
	return s.counters.Player
}

// Elapsed returns the simulated time in seconds.
func (s *Simulation) Elapsed() float64 {
	return s.counters.Elapsed
}

// Bounds returns the window size.
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// SpawnPlayer places a new player ship at the bottom of the window.
// Does nothing if a player is already alive. Must not be called during Tick.
func (s *Simulation) SpawnPlayer() bool {
	if s.livePlayer() != nil {
		return false
	}

	bottom := -s.bounds.Height / 2
	size := physics.Size{W: config.PlayerSize[0], H: config.PlayerSize[1]}
	s.arena.Spawn(entity.Entity{
		Role: entity.RolePlayer,
		Position: entity.Position{
			X: 0,
			Y: bottom + size.H/2*0.5 + config.PlayerBottomOffset,
			Z: config.SpriteDepth,
		},
		Scale:    entity.Scale{X: config.PlayerScale, Y: config.PlayerScale},
		Size:     &size,
		Velocity: &entity.Velocity{},
	})
	s.arena.Flush()
	s.counters.Player.Spawned()
	s.logger.Debug("player spawned", "t", s.counters.Elapsed)
	return true
}

// Sprites returns the render facets of every live entity, ordered by depth
// then ID.
func (s *Simulation) Sprites() []Sprite {
	sprites := make([]Sprite, 0, s.arena.Len())
	s.arena.Each(func(e *entity.Entity) {
		if e.Role == entity.RoleExplosionRequest {
			return
		}
		sp := Sprite{
			ID:    uint64(e.ID),
			Role:  e.Role,
			X:     e.Position.X,
			Y:     e.Position.Y,
			Z:     e.Position.Z,
			Frame: e.Frame,
		}
		switch {
		case e.Size != nil:
			size := e.Size.Scaled(e.Scale.X, e.Scale.Y)
			sp.W, sp.H = size.W, size.H
		case e.Role == entity.RoleExplosion:
			sp.W, sp.H = config.ExplosionCellSize, config.ExplosionCellSize
		}
		sprites = append(sprites, sp)
	})
	slices.SortStableFunc(sprites, func(a, b Sprite) int {
		switch {
		case a.Z < b.Z:
			return -1
		case a.Z > b.Z:
			return 1
		default:
			return 0
		}
	})
	return sprites
}

// livePlayer returns the player entity, or nil if there is none.
func (s *Simulation) livePlayer() *entity.Entity {
	s.players = s.arena.Collect(s.players, entity.RolePlayer)
	if len(s.players) == 0 {
		return nil
	}
	return s.players[0]
}

// applySystem applies the spawns and despawns requested so far this tick.
func (s *Simulation) applySystem() {
	s.arena.Flush()
}
