package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/netris/board"
	"github.com/stretchr/testify/assert"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestInput() (*Input, *clock) {
	c := &clock{now: time.Unix(1000, 0)}
	return newInput(100*time.Millisecond, c.Now), c
}

func TestInputPressThenHold(t *testing.T) {
	in, c := newTestInput()

	in.HandleKey(tcell.KeyLeft, 0, tcell.ModNone)
	snap := in.Poll()
	assert.True(t, snap.Keys.JustPressed(board.KeyLeft))
	assert.True(t, snap.Keys.Held(board.KeyLeft))

	c.Advance(50 * time.Millisecond)
	snap = in.Poll()
	assert.False(t, snap.Keys.JustPressed(board.KeyLeft), "edges are reported once")
	assert.True(t, snap.Keys.Held(board.KeyLeft))

	c.Advance(60 * time.Millisecond)
	snap = in.Poll()
	assert.False(t, snap.Keys.Held(board.KeyLeft), "released after the hold window")
	assert.False(t, snap.Keys.Any())
}

func TestInputRepeatExtendsHold(t *testing.T) {
	in, c := newTestInput()

	in.HandleKey(tcell.KeyRune, 's', tcell.ModNone)
	in.Poll()
	for i := 0; i < 5; i++ {
		c.Advance(80 * time.Millisecond)
		in.HandleKey(tcell.KeyRune, 's', tcell.ModNone)
		snap := in.Poll()
		assert.False(t, snap.Keys.JustPressed(board.KeyDown), "repeat %d is not a new press", i)
		assert.True(t, snap.Keys.Held(board.KeyDown))
	}

	c.Advance(150 * time.Millisecond)
	in.HandleKey(tcell.KeyRune, 's', tcell.ModNone)
	assert.True(t, in.Poll().Keys.JustPressed(board.KeyDown), "a key seen after the window is pressed again")
}

func TestInputQuitAndDebug(t *testing.T) {
	tests := []struct {
		name  string
		key   tcell.Key
		r     rune
		quit  bool
		debug bool
	}{
		{name: "escape", key: tcell.KeyEscape, quit: true},
		{name: "ctrl-c", key: tcell.KeyCtrlC, quit: true},
		{name: "q", key: tcell.KeyRune, r: 'q', quit: true},
		{name: "Q", key: tcell.KeyRune, r: 'Q', quit: true},
		{name: "f1", key: tcell.KeyF1, debug: true},
		{name: "other", key: tcell.KeyRune, r: 'z'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := newTestInput()
			in.HandleKey(tt.key, tt.r, tcell.ModNone)
			snap := in.Poll()
			assert.Equal(t, tt.quit, snap.Quit)
			assert.Equal(t, tt.debug, snap.ToggleDebug)
			assert.False(t, snap.Keys.Any())

			snap = in.Poll()
			assert.Equal(t, tt.quit, snap.Quit, "quit sticks")
			assert.False(t, snap.ToggleDebug, "debug toggles once")
		})
	}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want board.Key
	}{
		{tcell.KeyUp, 0, board.KeyRotate},
		{tcell.KeyRune, 'w', board.KeyRotate},
		{tcell.KeyRune, 'X', board.KeyRotate},
		{tcell.KeyLeft, 0, board.KeyLeft},
		{tcell.KeyRune, 'a', board.KeyLeft},
		{tcell.KeyRight, 0, board.KeyRight},
		{tcell.KeyRune, 'd', board.KeyRight},
		{tcell.KeyDown, 0, board.KeyDown},
		{tcell.KeyRune, 's', board.KeyDown},
		{tcell.KeyRune, 'c', board.KeyHold},
		{tcell.KeyEnter, 0, board.KeyConfirm},
		{tcell.KeyRune, 'p', board.KeyConfirm},
	}
	for _, tt := range tests {
		got, ok := mapKey(tt.key, tt.r)
		assert.True(t, ok, "key %v rune %q", tt.key, tt.r)
		assert.Equal(t, tt.want, got, "key %v rune %q", tt.key, tt.r)
	}

	_, ok := mapKey(tcell.KeyTab, 0)
	assert.False(t, ok)
}

func TestHandleEventIgnoresNonKeys(t *testing.T) {
	in, _ := newTestInput()
	assert.False(t, in.HandleEvent(tcell.NewEventResize(80, 24)))
	assert.True(t, in.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.True(t, in.Poll().Keys.JustPressed(board.KeyConfirm))
}
