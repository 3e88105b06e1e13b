package sim

import (
	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/formation"
	"github.com/tomz197/galaga/internal/physics"
)

// playerFireSystem fires a pair of lasers when the fire button goes down.
func (s *Simulation) playerFireSystem() {
	if !s.input.Fire || s.prevFire {
		return
	}
	player := s.livePlayer()
	if player == nil {
		return
	}

	xOffset := config.PlayerSize[0]/2*config.PlayerScale - config.PlayerLaserInset
	for _, dx := range [2]float64{-xOffset, xOffset} {
		s.spawnLaser(entity.RoleLaserFromPlayer,
			entity.Position{
				X: player.Position.X + dx,
				Y: player.Position.Y + config.PlayerLaserOffsetY,
				Z: config.SpriteDepth,
			},
			physics.Size{W: config.PlayerLaserSize[0], H: config.PlayerLaserSize[1]},
			1,
		)
	}
}

// enemySpawnSystem spawns an enemy once per spawn interval while the live
// enemy count is below config.EnemyMax.
func (s *Simulation) enemySpawnSystem() {
	if !s.spawnTimer.Tick() {
		return
	}
	if s.counters.EnemyCount >= config.EnemyMax {
		return
	}

	f := s.maker.Make(formation.Bounds{Width: s.bounds.Width, Height: s.bounds.Height})
	size := physics.Size{W: config.EnemySize[0], H: config.EnemySize[1]}
	id := s.arena.Spawn(entity.Entity{
		Role:      entity.RoleEnemy,
		Position:  entity.Position{X: f.Start.X, Y: f.Start.Y, Z: config.SpriteDepth},
		Scale:     entity.Scale{X: config.EnemyScale, Y: config.EnemyScale},
		Size:      &size,
		Formation: &f,
	})
	s.counters.EnemyCount++

	s.logger.Debug("enemy spawned",
		"enemy", id, "x", f.Start.X, "y", f.Start.Y, "dir", f.Direction(), "enemies", s.counters.EnemyCount)
}

// enemyFireSystem rolls once per tick; on success every enemy fires downward.
func (s *Simulation) enemyFireSystem() {
	if s.rng.Float64() >= config.EnemyFireProbability {
		return
	}

	s.targets = s.arena.Collect(s.targets, entity.RoleEnemy)
	for _, enemy := range s.targets {
		s.spawnLaser(entity.RoleLaserFromEnemy,
			entity.Position{
				X: enemy.Position.X,
				Y: enemy.Position.Y - config.EnemyLaserOffsetY,
				Z: config.SpriteDepth,
			},
			physics.Size{W: config.EnemyLaserSize[0], H: config.EnemyLaserSize[1]},
			-1,
		)
	}
}

// spawnLaser queues an auto-despawning laser moving straight along y.
func (s *Simulation) spawnLaser(role entity.Role, pos entity.Position, size physics.Size, dirY float64) entity.ID {
	return s.arena.Spawn(entity.Entity{
		Role:     role,
		Position: pos,
		Scale:    entity.Scale{X: config.LaserScale, Y: config.LaserScale},
		Size:     &size,
		Velocity: &entity.Velocity{X: 0, Y: dirY},
		Movable:  &entity.Movable{AutoDespawn: true},
	})
}

// requestExplosion queues a marker that becomes an explosion later this tick.
func (s *Simulation) requestExplosion(at entity.Position) {
	s.arena.Spawn(entity.Entity{
		Role:     entity.RoleExplosionRequest,
		Position: at,
	})
}

// explosionToSpawnSystem converts every explosion request into an animated
// explosion at the same position.
func (s *Simulation) explosionToSpawnSystem() {
	s.targets = s.arena.Collect(s.targets, entity.RoleExplosionRequest)
	for _, req := range s.targets {
		s.arena.Spawn(entity.Entity{
			Role:     entity.RoleExplosion,
			Position: req.Position,
			Timer:    entity.NewTimer(s.explosionPeriod),
		})
		s.arena.Despawn(req.ID)
	}
}

// explosionAnimationSystem advances explosion frames and removes explosions
// that ran past the last frame.
func (s *Simulation) explosionAnimationSystem() {
	s.targets = s.arena.Collect(s.targets, entity.RoleExplosion)
	for _, e := range s.targets {
		if e.Timer == nil || !e.Timer.Tick() {
			continue
		}
		e.Frame++
		if e.Frame >= config.ExplosionLen {
			s.arena.Despawn(e.ID)
		}
	}
}
