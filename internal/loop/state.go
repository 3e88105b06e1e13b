package loop

import (
	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/sim"
)

// GameState represents the current screen of a session.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Simulation running
	GameStateShutdown                  // Host is going away
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// screen identifies what is overlaid on the canvas. A change of screen
// clears the terminal so stale text does not linger.
type screen struct {
	state    GameState
	dead     bool
	inactive bool
}

// respawnPlayer spawns the player when it is not alive and either was never
// shot or has been dead for longer than the respawn delay.
func respawnPlayer(s *sim.Simulation) bool {
	if !shouldRespawn(s.Player(), s.Elapsed()) {
		return false
	}
	return s.SpawnPlayer()
}

func shouldRespawn(p sim.PlayerState, elapsed float64) bool {
	if p.Alive {
		return false
	}
	return p.LastDeath == -1 || elapsed > p.LastDeath+config.PlayerRespawnDelay
}

// respawnIn returns the seconds left until the player comes back, or zero.
func respawnIn(s *sim.Simulation) float64 {
	p := s.Player()
	if p.Alive || p.LastDeath == -1 {
		return 0
	}
	return max(p.LastDeath+config.PlayerRespawnDelay-s.Elapsed(), 0)
}

// layout fits the world's aspect ratio into the terminal, capped at the
// max render resolution, and centers it. Cells hold two vertical pixels,
// so a square world unit is one column wide and half a row tall.
func layout(termW, termH int, bounds sim.Bounds) (cols, rows, offCol, offRow int) {
	maxCols := max(min(termW, config.MaxTermWidth), 1)
	maxRows := max(min(termH, config.MaxTermHeight), 1)
	aspect := bounds.Width / bounds.Height

	rows = maxRows
	cols = int(float64(rows*2)*aspect + 0.5)
	if cols > maxCols {
		cols = maxCols
		rows = int(float64(cols)/aspect/2 + 0.5)
	}
	cols, rows = max(cols, 1), max(rows, 1)

	offCol = max((termW-cols)/2, 0)
	offRow = max((termH-rows)/2, 0)
	return cols, rows, offCol, offRow
}
