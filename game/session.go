// Package game wires a netris board, its input and its music onto the ecs
// scheduler. Frontends own the window or terminal and call Session.Tick once
// per frame, or hand the loop to Session.Run.
package game

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/plus3/netris/audio"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/ecs"
)

// Options configures a Session. The zero value plays a default board with no
// input and no sound.
type Options struct {
	Tuning board.Tuning
	// Rand seeds the piece randomizer when Source is nil.
	Rand *rand.Rand
	// Source overrides the piece randomizer.
	Source  board.Source
	Input   InputSource
	Jukebox audio.Jukebox
	Logger  *slog.Logger
}

// Session is one running game.
type Session struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	board     *board.Board
	quit      *ecs.Singleton[Quit]
	logger    *slog.Logger
}

func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Tuning.FallInterval == 0 && opts.Tuning.RepeatInterval == 0 {
		opts.Tuning = board.DefaultTuning()
	}
	jukebox := opts.Jukebox
	if jukebox == nil {
		jukebox = audio.Silent{}
	}

	var b *board.Board
	if opts.Source != nil {
		b = board.NewWithSource(opts.Tuning, opts.Source)
	} else {
		b = board.New(opts.Tuning, opts.Rand)
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, BoardHandle{Board: b})
	ecs.NewSingleton(storage, Controls{})
	ecs.NewSingleton(storage, DebugState{})
	quit := ecs.NewSingleton(storage, Quit{})

	// The board starts Ready, which never shows up as a transition.
	storage.Spawn(MusicCue{From: board.Ready, To: board.Ready})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&InputSystem{Source: opts.Input})
	scheduler.Register(&BoardSystem{Logger: logger})
	scheduler.Register(&MusicSystem{Jukebox: jukebox, Logger: logger})

	return &Session{
		storage:   storage,
		scheduler: scheduler,
		board:     b,
		quit:      quit,
		logger:    logger,
	}
}

// Tick runs every system once for a frame of length dt.
func (s *Session) Tick(dt time.Duration) {
	s.scheduler.Once(dt.Seconds())
}

func (s *Session) Board() *board.Board { return s.board }
func (s *Session) Storage() *ecs.Storage { return s.storage }
func (s *Session) Scheduler() *ecs.Scheduler { return s.scheduler }
func (s *Session) QuitRequested() bool { return s.quit.Get().Requested }

// Run ticks the session every interval until the player quits or ctx is
// done. It returns ctx's error in the latter case.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	s.logger.Info("session started", "interval", interval)
	s.scheduler.Run(ctx, interval, s.QuitRequested)
	if s.QuitRequested() {
		s.logger.Info("session ended", "score", s.board.Score(), "lines", s.board.Lines())
		return nil
	}
	return ctx.Err()
}
