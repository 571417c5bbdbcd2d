package game

import "github.com/plus3/netris/board"

// Snapshot is everything a frontend reports for one frame.
type Snapshot struct {
	Keys        board.KeyState
	Quit        bool
	ToggleDebug bool
}

// InputSource is polled once per frame by InputSystem.
type InputSource interface {
	Poll() Snapshot
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Snapshot

func (f InputFunc) Poll() Snapshot { return f() }

// Script replays a fixed list of snapshots, one per Poll, then reports no
// input. It drives sessions in tests and demos.
type Script struct {
	Frames []Snapshot
	next   int
}

func (s *Script) Poll() Snapshot {
	if s.next >= len(s.Frames) {
		return Snapshot{}
	}
	snap := s.Frames[s.next]
	s.next++
	return snap
}
