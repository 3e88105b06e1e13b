package sim

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
)

// TestCountersMatchArena plays random inputs with the respawn policy applied
// and checks the counters against the arena after every tick.
func TestCountersMatchArena(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(Options{Seed: rapid.Int64().Draw(t, "seed")})
		ticks := rapid.IntRange(1, 1500).Draw(t, "ticks")

		for i := 0; i < ticks; i++ {
			p := s.Player()
			if !p.Alive && (p.LastDeath == -1 || s.Elapsed() > p.LastDeath+config.PlayerRespawnDelay) {
				s.SpawnPlayer()
			}
			s.Tick(Input{
				Intent: rapid.IntRange(-1, 1).Draw(t, "intent"),
				Fire:   rapid.Bool().Draw(t, "fire"),
			})

			c := s.Counters()
			if n := s.arena.Count(entity.RoleEnemy); n != c.EnemyCount || n > config.EnemyMax {
				t.Fatalf("tick %d: %d enemies, counter %d", i, n, c.EnemyCount)
			}
			players := s.arena.Count(entity.RolePlayer)
			if players > 1 || (players == 1) != c.Player.Alive {
				t.Fatalf("tick %d: %d players, alive=%v", i, players, c.Player.Alive)
			}
			if n := s.arena.Count(entity.RoleExplosionRequest); n != 0 {
				t.Fatalf("tick %d: %d explosion requests survived the tick", i, n)
			}
		}
	})
}
