// Package loop runs one terminal game session: input, simulation and drawing
// on a fixed frame clock.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/draw"
	"github.com/tomz197/galaga/internal/input"
	"github.com/tomz197/galaga/internal/sim"
)

// Options configures a game session.
type Options struct {
	Logger       *log.Logger       // Nil discards logs
	Seed         int64             // Seed for the first game; each restart adds one
	Bounds       sim.Bounds        // Zero means the default window
	TermSizeFunc draw.TermSizeFunc // Nil reads the size of os.Stdout
}

// Game holds the state of one session.
type Game struct {
	opts   Options
	logger *log.Logger

	sim    *sim.Simulation
	games  int64
	stream *input.Stream
	input  input.Input

	canvas *draw.Canvas
	scene  *draw.Scene
	cw     *draw.ChunkWriter
	writer io.Writer

	state      GameState
	shown      screen
	lastInput  time.Time
	inactive   bool
	shutdownAt time.Time
	running    bool
}

// New creates a session reading keys from r and drawing to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Game {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Bounds.Width <= 0 || opts.Bounds.Height <= 0 {
		opts.Bounds = sim.Bounds{Width: config.WindowWidth, Height: config.WindowHeight}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termW, termH, _ := opts.TermSizeFunc()
	cols, rows, offCol, offRow := layout(termW, termH, opts.Bounds)
	canvas := draw.NewScaledCanvas(cols, rows, opts.Bounds.Width, opts.Bounds.Height)
	canvas.SetOffset(offCol, offRow)

	return &Game{
		opts:      opts,
		logger:    logger,
		stream:    input.StartStream(r),
		canvas:    canvas,
		scene:     draw.NewScene(canvas, opts.Bounds),
		cw:        draw.NewChunkWriter(w, offCol, offRow),
		writer:    w,
		state:     GameStateStart,
		lastInput: time.Now(),
		running:   true,
	}
}

// Run plays a session until the player quits, the input closes or the
// session idles out. Cancelling ctx shows a shutdown notice and then returns.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return New(r, w, opts).Run(ctx)
}

// Run starts the frame loop. It blocks until the session ends.
func (g *Game) Run(ctx context.Context) error {
	if err := draw.HideCursor(g.writer); err != nil {
		return err
	}
	defer draw.ShowCursor(g.writer)
	if err := draw.ClearScreen(g.writer); err != nil {
		return err
	}

	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()

	for g.running {
		if ctx.Err() != nil && g.state != GameStateShutdown {
			g.state = GameStateShutdown
			g.shutdownAt = time.Now()
		}

		g.processInput()
		g.updateScreen()

		switch g.state {
		case GameStateStart:
			g.updateStartState()
		case GameStatePlaying:
			g.updatePlayingState()
		case GameStateShutdown:
			g.updateShutdownState()
		}

		if err := g.drawFrame(); err != nil {
			return err
		}

		<-ticker.C
	}

	return draw.ClearScreen(g.writer)
}

// processInput reads pending keys and tracks inactivity.
func (g *Game) processInput() {
	g.input = g.stream.Read()

	switch idle := time.Since(g.lastInput); {
	case len(g.input.Pressed) > 0:
		g.lastInput = time.Now()
		g.inactive = false
	case idle > config.InactivityDisconnect:
		g.logger.Info("disconnecting idle session", "idle", idle.Round(time.Second))
		g.running = false
	case idle > config.InactivityWarn:
		g.inactive = true
	}

	if g.input.Quit || g.input.Closed {
		g.running = false
	}
}

// updateScreen follows terminal resizes.
func (g *Game) updateScreen() {
	termW, termH, err := g.opts.TermSizeFunc()
	if err != nil {
		return
	}
	cols, rows, offCol, offRow := layout(termW, termH, g.opts.Bounds)
	if cols != g.canvas.Cols() || rows != g.canvas.Rows() ||
		offCol != g.canvas.OffsetCol() || offRow != g.canvas.OffsetRow() {
		g.cw.Clear()
	}
	g.canvas.Resize(cols, rows)
	g.canvas.SetOffset(offCol, offRow)
	g.cw.SetOffset(offCol, offRow)
}

func (g *Game) updateStartState() {
	if g.input.Start() {
		g.startGame()
	}
}

// updatePlayingState applies the respawn policy and advances the simulation
// by one tick.
func (g *Game) updatePlayingState() {
	if respawnPlayer(g.sim) {
		g.logger.Debug("player respawned", "t", g.sim.Elapsed())
	}
	g.sim.Tick(sim.Input{
		Intent: g.input.Intent(),
		Fire:   g.input.Fire,
	})
}

func (g *Game) updateShutdownState() {
	if time.Since(g.shutdownAt) >= config.ShutdownNotice {
		g.running = false
	}
}

// startGame begins a new simulation. Each game in a session gets its own
// seed so restarts do not replay the same waves.
func (g *Game) startGame() {
	g.stream.Reset()
	seed := g.opts.Seed + g.games
	g.games++
	g.sim = sim.New(sim.Options{
		Bounds: g.opts.Bounds,
		Seed:   seed,
		Logger: g.logger,
	})
	g.state = GameStatePlaying
	g.logger.Info("game started", "seed", seed)
}

// drawFrame draws the canvas and the text overlay for the current screen.
func (g *Game) drawFrame() error {
	current := screen{state: g.state, inactive: g.inactive}
	if g.sim != nil {
		current.dead = !g.sim.Player().Alive
	}
	if current != g.shown {
		g.cw.Clear()
		g.canvas.ForceRedraw()
		g.shown = current
	}

	g.canvas.Clear()
	if g.sim != nil {
		g.scene.Draw(g.sim.Sprites())
	}
	if err := g.canvas.Render(g.cw); err != nil {
		return err
	}
	g.canvas.RenderBorder(g.cw)

	g.drawUI()

	return g.cw.Flush()
}
