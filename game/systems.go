package game

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/plus3/netris/audio"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/ecs"
)

// InputSystem copies the frontend's snapshot into the Controls singleton and
// applies the session-level requests.
type InputSystem struct {
	Source InputSource

	Controls ecs.Singleton[Controls]
	Quit     ecs.Singleton[Quit]
	Debug    ecs.Singleton[DebugState]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	var snap Snapshot
	if s.Source != nil {
		snap = s.Source.Poll()
	}

	s.Controls.Get().Keys = snap.Keys
	if snap.Quit {
		s.Quit.Get().Requested = true
	}
	if snap.ToggleDebug {
		debug := s.Debug.Get()
		debug.Visible = !debug.Visible
	}
}

// BoardSystem advances the board by the frame delta.
type BoardSystem struct {
	Logger *slog.Logger

	Board    ecs.Singleton[BoardHandle]
	Controls ecs.Singleton[Controls]
}

func (s *BoardSystem) Execute(frame *ecs.UpdateFrame) {
	b := s.Board.Get().Board
	before := b.State()

	elapsed := time.Duration(frame.DeltaTime * float64(time.Second))
	b.Update(elapsed, s.Controls.Get().Keys)

	if after := b.State(); after != before {
		s.Logger.Debug("board state changed",
			"from", before,
			"to", after,
			"score", b.Score(),
			"lines", b.Lines(),
			"level", b.Level(),
		)
		frame.Commands.Spawn(MusicCue{From: before, To: after, Frame: frame.Number})
	}
}

// MusicSystem keeps the jukebox in lock-step with the board by applying and
// deleting MusicCue entities.
type MusicSystem struct {
	Jukebox audio.Jukebox
	Logger  *slog.Logger

	Cues ecs.Query[struct {
		ecs.EntityId
		*MusicCue
	}]
}

func (s *MusicSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Cues.Len() == 0 {
		return
	}

	cues := make([]MusicCue, 0, s.Cues.Len())
	for cue := range s.Cues.Iter() {
		cues = append(cues, *cue.MusicCue)
		frame.Commands.Delete(cue.EntityId)
	}
	slices.SortStableFunc(cues, func(a, b MusicCue) int {
		return cmp.Compare(a.Frame, b.Frame)
	})

	for _, cue := range cues {
		s.apply(cue)
	}
}

func (s *MusicSystem) apply(cue MusicCue) {
	if s.Jukebox == nil {
		return
	}
	switch musicFor(cue.From, cue.To) {
	case playMenu:
		s.Jukebox.Play(audio.ThemeMenu)
	case playGame:
		s.Jukebox.Play(audio.ThemeGame)
	case pauseMusic:
		s.Jukebox.Pause()
	case resumeMusic:
		s.Jukebox.Resume()
	default:
		return
	}
	s.Logger.Debug("music cue", "from", cue.From, "to", cue.To)
}

type musicAction int

const (
	keepMusic musicAction = iota
	playMenu
	playGame
	pauseMusic
	resumeMusic
)

func musicFor(from, to board.State) musicAction {
	switch to {
	case board.Ready, board.Trapped:
		return playMenu
	case board.Paused:
		return pauseMusic
	case board.Playing:
		switch from {
		case board.Ready, board.Trapped:
			return playGame
		case board.Paused:
			return resumeMusic
		}
	}
	return keepMusic
}
