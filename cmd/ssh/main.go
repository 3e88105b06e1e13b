package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/draw"
	"github.com/tomz197/galaga/internal/loop"
	"github.com/tomz197/galaga/internal/sim"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 5 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "galaga-ssh",
	})
	if level, err := log.ParseLevel(config.GetEnv("GALAGA_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	if err := run(logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &gameHost{
		ctx:    ctx,
		logger: logger,
		seed:   config.GetEnvInt("GALAGA_SEED", time.Now().UnixNano()),
		bounds: sim.Bounds{
			Width:  config.GetEnvFloat("GALAGA_WIDTH", config.WindowWidth),
			Height: config.GetEnvFloat("GALAGA_HEIGHT", config.WindowHeight),
		},
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down, notifying sessions")

		// Sessions see the cancelled context, show a notice and exit.
		h.sessions.Wait()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// gameHost runs one independent game per SSH session.
type gameHost struct {
	ctx      context.Context
	logger   *log.Logger
	seed     int64
	bounds   sim.Bounds
	sessions sync.WaitGroup
	count    int64
	mu       sync.Mutex
}

// nextSeed gives every session its own seed.
func (h *gameHost) nextSeed() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	return h.seed + h.count*1_000_003
}

// gameMiddleware handles SSH sessions and runs the game loop.
func (h *gameHost) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.sessions.Add(1)
		defer h.sessions.Done()

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session",
			"term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.Options{
			Logger:       logger,
			Seed:         h.nextSeed(),
			Bounds:       h.bounds,
			TermSizeFunc: sizeTracker.getSize,
		}
		if err := loop.Run(h.ctx, bufio.NewReader(sess), sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// errNoWindow is returned until the client reports a usable window size.
var errNoWindow = errors.New("no window size")

// sizeTracker holds the latest window size reported by the SSH client.
type sizeTracker struct {
	mu            sync.RWMutex
	width, height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.width <= 0 || s.height <= 0 {
		return 0, 0, errNoWindow
	}
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
