package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/netris/game"
)

// Terminal is the part of tcell.Screen the game loop needs.
type Terminal interface {
	Canvas
	PollEvent() tcell.Event
	Sync()
}

// Run plays s on term, one tick every interval, until the player quits or
// ctx is done. in must be the session's input source. The caller owns term
// and should Fini it afterwards to stop the event reader.
func Run(ctx context.Context, term Terminal, s *game.Session, in *Input, interval time.Duration) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := term.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	screen := NewScreen(term)
	screen.Draw(s.Board())
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				term.Sync()
				screen.Draw(s.Board())
				continue
			}
			in.HandleEvent(ev)

		case now := <-ticker.C:
			s.Tick(now.Sub(last))
			last = now
			if s.QuitRequested() {
				return nil
			}
			screen.Draw(s.Board())
		}
	}
}
