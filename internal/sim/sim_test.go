package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/physics"
)

const step = config.TimeStep * config.BaseSpeed

func newTestSim() *Simulation {
	return New(Options{Seed: 1})
}

// newQuietSim returns a simulation that never spawns enemies on its own.
func newQuietSim() *Simulation {
	s := newTestSim()
	s.spawnTimer = entity.NewTimer(1 << 30)
	return s
}

// spawnNow adds an entity to the arena immediately.
func spawnNow(s *Simulation, e entity.Entity) *entity.Entity {
	id := s.arena.Spawn(e)
	s.arena.Flush()
	got, _ := s.arena.Get(id)
	return got
}

func TestPipelineOrder(t *testing.T) {
	assert.Equal(t, []string{
		"player_intent",
		"player_movement",
		"player_fire",
		"enemy_spawn",
		"enemy_fire",
		"movable",
		"formation",
		"laser_hit_enemy",
		"laser_hit_player",
		"apply",
		"explosion_to_spawn",
		"explosion_animation",
		"apply",
	}, Pipeline())
}

func TestNewDefaults(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, Bounds{Width: config.WindowWidth, Height: config.WindowHeight}, s.Bounds())
	assert.False(t, s.Player().Alive)
	assert.Equal(t, -1.0, s.Player().LastDeath)
	assert.Equal(t, 3, s.explosionPeriod)
	assert.Equal(t, 60, s.spawnTimer.Period)
}

func TestLinearMotion(t *testing.T) {
	s := newQuietSim()
	laser := spawnNow(s, entity.Entity{
		Role:     entity.RoleLaserFromPlayer,
		Position: entity.Position{X: 10, Y: -20, Z: 10},
		Velocity: &entity.Velocity{X: 0.5, Y: 0.25},
		Movable:  &entity.Movable{AutoDespawn: true},
	})

	const n = 30
	for i := 0; i < n; i++ {
		s.Tick(Input{})
	}

	assert.InDelta(t, 10+n*step*0.5, laser.Position.X, 1e-9)
	assert.InDelta(t, -20+n*step*0.25, laser.Position.Y, 1e-9)
	assert.Equal(t, 10.0, laser.Position.Z)
	assert.False(t, s.arena.IsDestroyed(laser.ID))
}

func TestAutoDespawnPastMargin(t *testing.T) {
	s := newQuietSim()
	limit := config.WindowHeight/2 + config.DespawnMargin

	leaving := spawnNow(s, entity.Entity{
		Role:     entity.RoleLaserFromPlayer,
		Position: entity.Position{Y: limit - 10},
		Velocity: &entity.Velocity{Y: 1},
		Movable:  &entity.Movable{AutoDespawn: true},
	})
	staying := spawnNow(s, entity.Entity{
		Role:     entity.RoleLaserFromPlayer,
		Position: entity.Position{Y: limit - 10},
		Velocity: &entity.Velocity{Y: 1},
		Movable:  &entity.Movable{AutoDespawn: false},
	})

	s.Tick(Input{})
	s.Tick(Input{})
	assert.False(t, s.arena.IsDestroyed(leaving.ID))

	s.Tick(Input{})
	s.Tick(Input{})
	assert.True(t, s.arena.IsDestroyed(leaving.ID))
	_, ok := s.arena.Get(leaving.ID)
	assert.False(t, ok, "removed in the same tick it left")

	assert.False(t, s.arena.IsDestroyed(staying.ID))
	assert.Greater(t, staying.Position.Y, limit)
}

func TestEnemySpawnGate(t *testing.T) {
	s := newTestSim()

	for i := 0; i < 59; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, 0, s.Counters().EnemyCount)

	s.Tick(Input{})
	assert.Equal(t, 1, s.Counters().EnemyCount)
	assert.Equal(t, 1, s.arena.Count(entity.RoleEnemy))

	for i := 0; i < 60; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, 2, s.Counters().EnemyCount)

	for i := 0; i < 600; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, config.EnemyMax, s.Counters().EnemyCount)
	assert.Equal(t, config.EnemyMax, s.arena.Count(entity.RoleEnemy))

	// Two enemies from the same group share the template
	enemies := s.arena.Collect(nil, entity.RoleEnemy)
	require.Len(t, enemies, 2)
	assert.Equal(t, enemies[0].Formation.Start, enemies[1].Formation.Start)
	assert.Equal(t, enemies[0].Formation.Pivot, enemies[1].Formation.Pivot)
}

func TestEnemyCountNeverExceedsMax(t *testing.T) {
	s := New(Options{Seed: 2024})

	for i := 0; i < 20000; i++ {
		if !s.Player().Alive {
			s.SpawnPlayer()
		}
		s.Tick(Input{Intent: (i/90)%3 - 1, Fire: i%8 < 4})

		c := s.Counters()
		require.LessOrEqual(t, c.EnemyCount, config.EnemyMax, "tick %d", i)
		require.GreaterOrEqual(t, c.EnemyCount, 0, "tick %d", i)
		require.Equal(t, s.arena.Count(entity.RoleEnemy), c.EnemyCount, "tick %d", i)
		require.LessOrEqual(t, s.arena.Count(entity.RolePlayer), 1, "tick %d", i)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []Sprite {
		s := New(Options{Seed: 77})
		s.SpawnPlayer()
		for i := 0; i < 900; i++ {
			if !s.Player().Alive && s.Elapsed() > s.Player().LastDeath+config.PlayerRespawnDelay {
				s.SpawnPlayer()
			}
			s.Tick(Input{Intent: (i/45)%3 - 1, Fire: i%10 == 0})
		}
		return s.Sprites()
	}

	assert.Equal(t, run(), run())
}

func TestSpawnPlayerAtMostOnce(t *testing.T) {
	s := newTestSim()

	require.True(t, s.SpawnPlayer())
	assert.False(t, s.SpawnPlayer())
	assert.Equal(t, 1, s.arena.Count(entity.RolePlayer))
	assert.True(t, s.Player().Alive)

	player := s.livePlayer()
	require.NotNil(t, player)
	assert.Equal(t, 0.0, player.Position.X)
	assert.InDelta(t, -config.WindowHeight/2+256+15, player.Position.Y, 1e-9)
}

func TestPlayerIntentMovesAndClamps(t *testing.T) {
	s := newQuietSim()
	s.SpawnPlayer()
	player := s.livePlayer()

	s.Tick(Input{Intent: 1})
	assert.InDelta(t, step, player.Position.X, 1e-9)

	s.Tick(Input{Intent: -1})
	assert.InDelta(t, 0, player.Position.X, 1e-9)

	s.Tick(Input{Intent: 5})
	assert.Equal(t, 1.0, player.Velocity.X, "intent is clamped to a unit direction")

	for i := 0; i < 300; i++ {
		s.Tick(Input{Intent: 1})
	}
	hw := config.PlayerSize[0] * config.PlayerScale / 2
	assert.InDelta(t, config.WindowWidth/2-hw, player.Position.X, 1e-9)
}

func TestPlayerFiresOnPressEdge(t *testing.T) {
	s := newQuietSim()
	s.SpawnPlayer()
	player := s.livePlayer()

	s.Tick(Input{Fire: true})
	s.Tick(Input{Fire: true})
	s.Tick(Input{Fire: true})
	lasers := s.arena.Collect(nil, entity.RoleLaserFromPlayer)
	require.Len(t, lasers, 2)

	offset := config.PlayerSize[0]/2*config.PlayerScale - config.PlayerLaserInset
	assert.InDelta(t, player.Position.X-offset, lasers[0].Position.X, 1e-9)
	assert.InDelta(t, player.Position.X+offset, lasers[1].Position.X, 1e-9)
	for _, l := range lasers {
		assert.Equal(t, entity.Velocity{X: 0, Y: 1}, *l.Velocity)
		assert.True(t, l.Movable.AutoDespawn)
		// Spawned on tick 1, moved on ticks 2 and 3
		assert.InDelta(t, player.Position.Y+config.PlayerLaserOffsetY+2*step, l.Position.Y, 1e-9)
	}

	s.Tick(Input{})
	s.Tick(Input{Fire: true})
	assert.Equal(t, 4, s.arena.Count(entity.RoleLaserFromPlayer))
}

func TestNoFireWithoutPlayer(t *testing.T) {
	s := newTestSim()
	s.Tick(Input{Fire: true})
	assert.Equal(t, 0, s.arena.Count(entity.RoleLaserFromPlayer))
}

func TestSpritesExposeRenderFacets(t *testing.T) {
	s := newQuietSim()
	s.SpawnPlayer()
	spawnNow(s, entity.Entity{Role: entity.RoleExplosion, Position: entity.Position{X: 5, Y: 6, Z: 1}, Frame: 4})
	spawnNow(s, entity.Entity{Role: entity.RoleExplosionRequest})

	sprites := s.Sprites()
	require.Len(t, sprites, 2)

	// Lower depth first
	assert.Equal(t, entity.RoleExplosion, sprites[0].Role)
	assert.Equal(t, 4, sprites[0].Frame)
	assert.Equal(t, config.ExplosionCellSize, sprites[0].W)

	assert.Equal(t, entity.RolePlayer, sprites[1].Role)
	assert.InDelta(t, 102.4, sprites[1].W, 1e-9)
	assert.InDelta(t, 102.4, sprites[1].H, 1e-9)
}

func TestOutsideBoundsHelperMatchesMotion(t *testing.T) {
	// Sanity check the margin used by the movable system
	assert.True(t, physics.OutsideBounds(0, config.WindowHeight/2+config.DespawnMargin+1,
		config.WindowWidth/2, config.WindowHeight/2, config.DespawnMargin))
}
