package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/game"
)

var bindings = map[board.Key][]ebiten.Key{
	board.KeyRotate:  {ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyX},
	board.KeyLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	board.KeyRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	board.KeyDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
	board.KeyHold:    {ebiten.KeyC, ebiten.KeyShiftLeft},
	board.KeyConfirm: {ebiten.KeyEnter, ebiten.KeyP},
}

// keyboard reads Ebiten's key state. It must be polled from Update.
type keyboard struct {
	// captured reports whether another consumer owns the keyboard this frame.
	captured func() bool
}

var _ game.InputSource = (*keyboard)(nil)

func (k *keyboard) Poll() game.Snapshot {
	snap := game.Snapshot{
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleDebug: inpututil.IsKeyJustPressed(ebiten.KeyF1),
	}
	if k.captured != nil && k.captured() {
		return snap
	}
	for _, bk := range board.Keys() {
		for _, ek := range bindings[bk] {
			if inpututil.IsKeyJustPressed(ek) {
				snap.Keys.Press(bk)
			}
			if ebiten.IsKeyPressed(ek) {
				snap.Keys.SetHeld(bk, true)
			}
		}
	}
	return snap
}
