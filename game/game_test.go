package game

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/netris/audio"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/ecs"
	"github.com/plus3/netris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

type recordingJukebox struct {
	events []string
}

func (j *recordingJukebox) Play(t audio.Theme) { j.events = append(j.events, "play "+t.String()) }
func (j *recordingJukebox) Pause() { j.events = append(j.events, "pause") }
func (j *recordingJukebox) Resume() { j.events = append(j.events, "resume") }
func (j *recordingJukebox) Stop() { j.events = append(j.events, "stop") }
func (j *recordingJukebox) Close() error { return nil }

type squares struct{}

func (squares) Next() piece.Kind { return piece.Square }

func press(keys ...board.Key) Snapshot {
	var s Snapshot
	s.Keys.Press(keys...)
	return s
}

func newTestSession(frames ...Snapshot) (*Session, *recordingJukebox) {
	j := &recordingJukebox{}
	s := NewSession(Options{
		Source:  squares{},
		Input:   &Script{Frames: frames},
		Jukebox: j,
	})
	return s, j
}

func TestSessionStartsReadyWithMenuMusic(t *testing.T) {
	s, j := newTestSession()
	s.Tick(frame)

	assert.Equal(t, board.Ready, s.Board().State())
	assert.Equal(t, []string{"play menu"}, j.events)
	assert.False(t, s.QuitRequested())
}

func TestMusicFollowsBoardState(t *testing.T) {
	s, j := newTestSession(
		press(board.KeyConfirm),
		Snapshot{},
		press(board.KeyConfirm),
		Snapshot{},
		press(board.KeyConfirm),
		Snapshot{},
	)

	states := make([]board.State, 0, 6)
	for range 6 {
		s.Tick(frame)
		states = append(states, s.Board().State())
	}

	assert.Equal(t, []board.State{
		board.Playing, board.Playing, board.Paused, board.Paused, board.Playing, board.Playing,
	}, states)
	assert.Equal(t, []string{"play menu", "play game", "pause", "resume"}, j.events)

	_, falling := s.Board().Falling()
	assert.True(t, falling, "a piece spawned once play began")
}

func TestCuesAreConsumed(t *testing.T) {
	s, _ := newTestSession(press(board.KeyConfirm))
	s.Tick(frame)
	s.Tick(frame)

	cues := ecs.NewQuery[struct{ *MusicCue }](s.Storage())
	cues.Execute()
	assert.Zero(t, cues.Len())
}

func TestQuitAndDebugRequests(t *testing.T) {
	s, _ := newTestSession(
		Snapshot{ToggleDebug: true},
		Snapshot{},
		Snapshot{ToggleDebug: true, Quit: true},
	)
	debug := ecs.NewSingleton[DebugState](s.Storage())

	s.Tick(frame)
	assert.True(t, debug.Get().Visible)
	s.Tick(frame)
	assert.True(t, debug.Get().Visible)
	assert.False(t, s.QuitRequested())

	s.Tick(frame)
	assert.False(t, debug.Get().Visible)
	assert.True(t, s.QuitRequested())
}

func TestControlsMirrorTheLatestSnapshot(t *testing.T) {
	s, _ := newTestSession(press(board.KeyLeft), Snapshot{})
	controls := ecs.NewSingleton[Controls](s.Storage())

	s.Tick(frame)
	assert.True(t, controls.Get().Keys.Held(board.KeyLeft))
	s.Tick(frame)
	assert.False(t, controls.Get().Keys.Any())
}

func TestMusicForTransitions(t *testing.T) {
	tests := []struct {
		from, to board.State
		want     musicAction
	}{
		{board.Ready, board.Ready, playMenu},
		{board.Ready, board.Playing, playGame},
		{board.Trapped, board.Playing, playGame},
		{board.Playing, board.Paused, pauseMusic},
		{board.Paused, board.Playing, resumeMusic},
		{board.Playing, board.Trapped, playMenu},
		{board.Playing, board.Clearing, keepMusic},
		{board.Clearing, board.Playing, keepMusic},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, musicFor(tt.from, tt.to))
		})
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	s, _ := newTestSession(Snapshot{}, Snapshot{Quit: true})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Run(ctx, time.Millisecond))
	assert.True(t, s.QuitRequested())
}

func TestRunStopsOnContext(t *testing.T) {
	s, _ := newTestSession()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, s.Scheduler().GetStats().Frames)
}

func TestZeroOptionsPlayDefaultBoard(t *testing.T) {
	s := NewSession(Options{})
	s.Tick(frame)
	assert.Equal(t, board.DefaultTuning().FallInterval, s.Board().Tuning().FallInterval)
	assert.Equal(t, board.Ready, s.Board().State())
}
