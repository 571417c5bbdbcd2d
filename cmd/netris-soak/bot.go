package main

import (
	"math/rand/v2"

	"github.com/plus3/netris/board"
	"github.com/plus3/netris/game"
)

// bot mashes random keys. It confirms whenever the board waits for a
// player and pauses only rarely so games keep moving.
type bot struct {
	rng   *rand.Rand
	board *board.Board
	held  board.Key
	hold  int
}

var moves = []board.Key{board.KeyRotate, board.KeyLeft, board.KeyRight, board.KeyDown, board.KeyHold}

func (b *bot) Poll() game.Snapshot {
	var snap game.Snapshot
	switch b.board.State() {
	case board.Ready, board.Trapped, board.Paused:
		snap.Keys.Press(board.KeyConfirm)
		return snap
	case board.Clearing:
		return snap
	}

	if b.hold > 0 {
		b.hold--
		snap.Keys.SetHeld(b.held, true)
		return snap
	}
	switch n := b.rng.IntN(100); {
	case n < 1:
		snap.Keys.Press(board.KeyConfirm)
	case n < 40:
		k := moves[b.rng.IntN(len(moves))]
		snap.Keys.Press(k)
		if k != board.KeyRotate && k != board.KeyHold {
			b.held, b.hold = k, b.rng.IntN(10)
		}
	}
	return snap
}
