package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/galaga/internal/config"
)

// titleArt is "GALAGA" in the figlet small font.
var titleArt = []string{
	`  ___   _   _      _   ___   _   `,
	` / __| /_\ | |    /_\ / __| /_\  `,
	`| (_ |/ _ \| |__ / _ \ (_ |/ _ \ `,
	` \___/_/ \_\____/_/ \_\___/_/ \_\`,
}

var controlLines = []string{
	"A D / < >  . . .  Move",
	"SPACE  . . . . .  Fire",
	"Q  . . . . . . .  Quit",
}

// drawUI draws the text overlay for the current screen.
func (g *Game) drawUI() {
	centerX := g.canvas.Cols() / 2
	centerY := g.canvas.Rows() / 2

	switch {
	case g.state == GameStateShutdown:
		g.drawShutdownScreen(centerX, centerY)
	case g.inactive:
		g.drawInactivityScreen(centerX, centerY)
	case g.state == GameStateStart:
		g.drawStartScreen(centerX, centerY)
	case g.state == GameStatePlaying:
		g.drawPlayingHUD(centerX, centerY)
	}
}

func (g *Game) drawStartScreen(centerX, centerY int) {
	cw := g.cw
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	top := centerY - 6
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, top+i, line)
	}

	controlsY := top + len(titleArt) + 2
	cw.WriteCentered(centerX, controlsY, "Controls")
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt; pad so the off phase erases it
	prompt := ">>  Press SPACE to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = fmt.Sprintf("%*s", len(prompt), "")
	}
	cw.WriteCentered(centerX, controlsY+len(controlLines)+2, prompt)
}

// drawPlayingHUD draws the counters. Fields are fixed width so shorter
// values overwrite longer ones.
func (g *Game) drawPlayingHUD(centerX, centerY int) {
	cw := g.cw
	c := g.sim.Counters()

	cw.WriteAt(2, 1, fmt.Sprintf("Time: %-7.1f", c.Elapsed))
	enemies := fmt.Sprintf("Enemies: %d/%d", c.EnemyCount, config.EnemyMax)
	cw.WriteAt(g.canvas.Cols()-len(enemies), 1, enemies)

	if !c.Player.Alive {
		cw.WriteCentered(centerX, centerY-1, "SHOT DOWN")
		cw.WriteCentered(centerX, centerY+1, fmt.Sprintf("Respawning in %.1fs", respawnIn(g.sim)))
	}
}

func (g *Game) drawInactivityScreen(centerX, centerY int) {
	left := config.InactivityDisconnect - time.Since(g.lastInput)
	g.cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")
	g.cw.WriteCentered(centerX, centerY, fmt.Sprintf("Disconnecting in %3d seconds", int(left.Seconds())))
	g.cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

func (g *Game) drawShutdownScreen(centerX, centerY int) {
	g.cw.WriteCentered(centerX, centerY-1, "SERVER SHUTTING DOWN")
	g.cw.WriteCentered(centerX, centerY+1, "Thanks for playing!")
}
