package terminal

import (
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/game"
)

// DefaultHoldWindow covers the usual terminal autorepeat delay.
const DefaultHoldWindow = 120 * time.Millisecond

// Input turns tcell key events into per-frame snapshots. Terminals report no
// releases, so a key stays held until HoldWindow passes without another event
// for it. An event for a key that is not held is a press edge.
type Input struct {
	HoldWindow time.Duration

	mu       sync.Mutex
	now      func() time.Time
	lastSeen map[board.Key]time.Time
	pressed  board.KeyState
	quit     bool
	debug    bool
}

var _ game.InputSource = (*Input)(nil)

func NewInput(holdWindow time.Duration) *Input {
	return newInput(holdWindow, time.Now)
}

func newInput(holdWindow time.Duration, now func() time.Time) *Input {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &Input{
		HoldWindow: holdWindow,
		now:        now,
		lastSeen:   make(map[board.Key]time.Time),
	}
}

// HandleEvent records key events and reports whether ev was one.
func (in *Input) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	in.HandleKey(key.Key(), key.Rune(), key.Modifiers())
	return true
}

func (in *Input) HandleKey(k tcell.Key, r rune, mod tcell.ModMask) {
	in.mu.Lock()
	defer in.mu.Unlock()

	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.quit = true
		return
	case tcell.KeyF1:
		in.debug = true
		return
	}
	if k == tcell.KeyRune && unicode.ToLower(r) == 'q' {
		in.quit = true
		return
	}

	bk, ok := mapKey(k, r)
	if !ok {
		return
	}
	now := in.now()
	if !in.heldAt(bk, now) {
		in.pressed.Press(bk)
	}
	in.lastSeen[bk] = now
}

func (in *Input) heldAt(k board.Key, now time.Time) bool {
	seen, ok := in.lastSeen[k]
	return ok && now.Sub(seen) <= in.HoldWindow
}

func mapKey(k tcell.Key, r rune) (board.Key, bool) {
	switch k {
	case tcell.KeyUp:
		return board.KeyRotate, true
	case tcell.KeyLeft:
		return board.KeyLeft, true
	case tcell.KeyRight:
		return board.KeyRight, true
	case tcell.KeyDown:
		return board.KeyDown, true
	case tcell.KeyEnter:
		return board.KeyConfirm, true
	case tcell.KeyRune:
		switch unicode.ToLower(r) {
		case 'w', 'x':
			return board.KeyRotate, true
		case 'a':
			return board.KeyLeft, true
		case 'd':
			return board.KeyRight, true
		case 's':
			return board.KeyDown, true
		case 'c':
			return board.KeyHold, true
		case 'p':
			return board.KeyConfirm, true
		}
	}
	return 0, false
}

// Poll returns the edges recorded since the previous poll and the keys still
// inside their hold window.
func (in *Input) Poll() game.Snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()

	now := in.now()
	snap := game.Snapshot{Keys: in.pressed, Quit: in.quit, ToggleDebug: in.debug}
	for _, k := range board.Keys() {
		if in.heldAt(k, now) {
			snap.Keys.SetHeld(k, true)
		}
	}
	in.pressed.Reset()
	in.debug = false
	return snap
}
