// Command netris-term plays netris in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/netris/audio"
	"github.com/plus3/netris/audio/beepaudio"
	"github.com/plus3/netris/config"
	"github.com/plus3/netris/game"
	"github.com/plus3/netris/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "netris-term:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	// The screen owns stdout, so logs are dropped unless log.file is set.
	logger, closer, err := cfg.Logger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	var jukebox audio.Jukebox = audio.Silent{}
	if !cfg.Audio.Mute {
		jb, err := beepaudio.New(cfg.Synth(), logger)
		if err != nil {
			logger.Warn("music disabled", "err", err)
		} else {
			defer jb.Close()
			jukebox = jb
		}
	}

	in := terminal.NewInput(cfg.Terminal.HoldWindow)
	session := game.NewSession(game.Options{
		Tuning:  cfg.Tuning(),
		Rand:    cfg.Rand(),
		Input:   in,
		Jukebox: jukebox,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("terminal session started", slog.Uint64("seed", cfg.Seed), "tick", cfg.Terminal.Tick)
	err = terminal.Run(ctx, screen, session, in, cfg.Terminal.Tick)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	b := session.Board()
	logger.Info("terminal session ended", "score", b.Score(), "lines", b.Lines(), "level", b.Level())
	return err
}
