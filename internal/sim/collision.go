package sim

import (
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/physics"
)

// playerLaserHitEnemySystem destroys every player laser and enemy pair that
// overlap. A laser or enemy consumed earlier in the pass is never matched
// again, so one laser kills at most one enemy and no enemy is counted twice.
func (s *Simulation) playerLaserHitEnemySystem() {
	s.lasers = s.arena.Collect(s.lasers, entity.RoleLaserFromPlayer)
	s.targets = s.arena.Collect(s.targets, entity.RoleEnemy)
	clear(s.consumed)

	for _, laser := range s.lasers {
		laserBox, ok := laser.Box()
		if !ok {
			continue
		}

		for _, enemy := range s.targets {
			if s.isConsumed(laser.ID) {
				break
			}
			if s.isConsumed(enemy.ID) {
				continue
			}
			enemyBox, ok := enemy.Box()
			if !ok || !physics.Collide(laserBox, enemyBox) {
				continue
			}

			s.arena.Despawn(enemy.ID)
			s.consumed[enemy.ID] = struct{}{}
			if s.counters.EnemyCount > 0 {
				s.counters.EnemyCount--
			}

			s.arena.Despawn(laser.ID)
			s.consumed[laser.ID] = struct{}{}

			s.requestExplosion(enemy.Position)
			s.logger.Debug("enemy destroyed",
				"enemy", enemy.ID, "laser", laser.ID, "enemies", s.counters.EnemyCount)
		}
	}
}

// enemyLaserHitPlayerSystem destroys the player and the first enemy laser
// touching it. Without a live player it does nothing.
func (s *Simulation) enemyLaserHitPlayerSystem() {
	player := s.livePlayer()
	if player == nil {
		return
	}
	playerBox, ok := player.Box()
	if !ok {
		return
	}

	s.lasers = s.arena.Collect(s.lasers, entity.RoleLaserFromEnemy)
	for _, laser := range s.lasers {
		laserBox, ok := laser.Box()
		if !ok || !physics.Collide(laserBox, playerBox) {
			continue
		}

		s.arena.Despawn(player.ID)
		s.counters.Player.Shot(s.counters.Elapsed)
		s.arena.Despawn(laser.ID)
		s.requestExplosion(player.Position)

		s.logger.Debug("player hit", "laser", laser.ID, "t", s.counters.Elapsed)
		break
	}
}

func (s *Simulation) isConsumed(id entity.ID) bool {
	_, ok := s.consumed[id]
	return ok
}
