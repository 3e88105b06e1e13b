package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/loop"
	"github.com/tomz197/galaga/internal/sim"
)

func main() {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	opts := loop.Options{
		Logger: logger,
		Seed:   config.GetEnvInt("GALAGA_SEED", time.Now().UnixNano()),
		Bounds: sim.Bounds{
			Width:  config.GetEnvFloat("GALAGA_WIDTH", config.WindowWidth),
			Height: config.GetEnvFloat("GALAGA_HEIGHT", config.WindowHeight),
		},
	}
	logger.Info("starting", "seed", opts.Seed, "width", opts.Bounds.Width, "height", opts.Bounds.Height)

	err = loop.Run(context.Background(), bufio.NewReader(os.Stdin), os.Stdout, opts)
	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to GALAGA_LOG_FILE when set. The terminal is owned by the
// game, so logs are discarded otherwise.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeLog := func() {}
	if path := config.GetEnv("GALAGA_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "galaga",
	})
	if level, err := log.ParseLevel(config.GetEnv("GALAGA_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}
	return logger, closeLog, nil
}
