package sim

import (
	"math"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/physics"
)

// playerIntentSystem turns the horizontal intent into the player's velocity.
func (s *Simulation) playerIntentSystem() {
	player := s.livePlayer()
	if player == nil || player.Velocity == nil {
		return
	}
	intent := s.input.Intent
	switch {
	case intent < 0:
		player.Velocity.X = -1
	case intent > 0:
		player.Velocity.X = 1
	default:
		player.Velocity.X = 0
	}
}

// playerMovementSystem moves the player by its velocity and keeps the ship
// inside the window horizontally.
func (s *Simulation) playerMovementSystem() {
	player := s.livePlayer()
	if player == nil || player.Velocity == nil {
		return
	}
	integrate(&player.Position, player.Velocity)

	limit := s.bounds.Width / 2
	if box, ok := player.Box(); ok {
		hw, _ := box.Half()
		limit = math.Max(limit-hw, 0)
	}
	player.Position.X = math.Max(-limit, math.Min(limit, player.Position.X))
}

// movableSystem moves every movable entity by its velocity and marks
// auto-despawn entities that left the window plus margin.
func (s *Simulation) movableSystem() {
	halfW, halfH := s.bounds.Width/2, s.bounds.Height/2
	s.arena.Each(func(e *entity.Entity) {
		if e.Velocity == nil || e.Movable == nil {
			return
		}
		integrate(&e.Position, e.Velocity)

		if e.Movable.AutoDespawn && physics.OutsideBounds(e.Position.X, e.Position.Y, halfW, halfH, config.DespawnMargin) {
			s.arena.Despawn(e.ID)
		}
	})
}

// formationSystem advances every enemy along its formation path.
func (s *Simulation) formationSystem() {
	s.targets = s.arena.Collect(s.targets, entity.RoleEnemy)
	for _, enemy := range s.targets {
		if enemy.Formation == nil {
			continue
		}
		enemy.Position.X, enemy.Position.Y = enemy.Formation.Step(enemy.Position.X, enemy.Position.Y, config.TimeStep)
	}
}

// integrate applies one tick of velocity to a position.
func integrate(pos *entity.Position, vel *entity.Velocity) {
	pos.X += vel.X * config.TimeStep * config.BaseSpeed
	pos.Y += vel.Y * config.TimeStep * config.BaseSpeed
}
