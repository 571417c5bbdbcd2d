// Package board is the falling-block simulation: the cell grid, the falling
// piece tracker and the state machine that spawns, moves, locks and clears.
//
// A Board is advanced by calling Update once per host tick. Nothing in this
// package blocks or is safe for concurrent use.
package board

import (
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/plus3/netris/piece"
)

type Board struct {
	tuning Tuning
	layout Layout
	grid   *Grid
	source Source

	state   State
	falling *FallingPiece
	next    piece.Piece
	hold    piece.Piece
	clear   *clearJob

	score int
	lines int
	level int
	skin  int

	fallTimer  time.Duration
	inputTimer time.Duration
	bypass     bool
}

// New returns a board in the Ready state drawing kinds from r. A nil r uses
// the process-wide generator.
func New(t Tuning, r *rand.Rand) *Board {
	return NewWithSource(t, NewRandomizer(r))
}

// NewWithSource returns a board in the Ready state drawing kinds from src.
func NewWithSource(t Tuning, src Source) *Board {
	b := &Board{
		tuning: t.withDefaults(),
		layout: DefaultLayout(),
		grid:   NewGrid(GridWidth, GridHeight),
		source: src,
		state:  Ready,
		level:  1,
	}
	b.drawFrames()
	return b
}

// Update advances the board by one tick.
func (b *Board) Update(elapsed time.Duration, in Input) {
	if in == nil {
		in = NoInput
	}
	switch b.state {
	case Ready, Trapped:
		if in.JustPressed(KeyConfirm) {
			b.Start()
		}
	case Paused:
		if in.JustPressed(KeyConfirm) {
			b.state = Playing
		}
	case Playing:
		b.play(elapsed, in)
	case Clearing:
		b.stepClear()
	}
}

// Start resets score, field and previews and enters Playing.
func (b *Board) Start() {
	b.grid.ClearRect(b.layout.Field)
	b.falling = nil
	b.hold = nil
	b.clear = nil
	b.score, b.lines, b.level, b.skin = 0, 0, 1, 0
	b.fallTimer, b.inputTimer, b.bypass = 0, 0, false
	b.next = piece.New(b.source.Next())
	b.drawPreview(b.layout.HoldFrame, b.layout.HoldAnchor, nil)
	b.drawPreview(b.layout.NextFrame, b.layout.NextAnchor, b.next)
	b.state = Playing
}

// Pause suspends a game in progress. It reports whether the state changed.
func (b *Board) Pause() bool {
	if b.state != Playing {
		return false
	}
	b.state = Paused
	return true
}

func (b *Board) play(elapsed time.Duration, in Input) {
	if in.JustPressed(KeyConfirm) {
		b.Pause()
		return
	}
	if b.falling == nil && !b.Spawn() {
		return
	}

	b.bypass = false
	b.handleInput(elapsed, in)
	if b.state != Playing || b.falling == nil {
		return
	}

	b.fallTimer += elapsed
	if b.bypass || b.fallTimer > b.FallInterval() {
		b.fallTimer = 0
		b.MoveDown()
	}
}

func (b *Board) handleInput(elapsed time.Duration, in Input) {
	if in.JustPressed(KeyHold) {
		b.HoldSwap()
		if b.state != Playing || b.falling == nil {
			return
		}
	}
	if in.JustPressed(KeyRotate) {
		b.Rotate()
	}

	b.inputTimer += elapsed
	repeat := b.inputTimer > b.tuning.RepeatInterval
	if repeat {
		b.inputTimer = 0
	}
	fire := func(k Key) bool {
		return in.JustPressed(k) || (repeat && in.Held(k))
	}
	if fire(KeyLeft) {
		b.MoveLeft()
	}
	if fire(KeyRight) {
		b.MoveRight()
	}
	if fire(KeyDown) {
		b.bypass = true
	}
}

// FallInterval is the gravity period at the current level.
func (b *Board) FallInterval() time.Duration {
	return b.tuning.FallIntervalAt(b.level)
}

func (b *Board) drawFrames() {
	bc, bt := b.tuning.BorderColor, b.tuning.BorderTexture
	for _, r := range []image.Rectangle{b.layout.Border, b.layout.HoldFrame, b.layout.NextFrame} {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.grid.Set(x, r.Min.Y, bc, bt)
			b.grid.Set(x, r.Max.Y-1, bc, bt)
		}
		for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
			b.grid.Set(r.Min.X, y, bc, bt)
			b.grid.Set(r.Max.X-1, y, bc, bt)
		}
	}
}

func (b *Board) drawPreview(frame image.Rectangle, anchor image.Point, p piece.Piece) {
	b.grid.ClearRect(frameInterior(frame))
	if p == nil {
		return
	}
	origin := anchor.Add(p.DisplayOffset())
	for _, off := range p.CellOffsets() {
		pos := origin.Add(off)
		b.grid.Set(pos.X, pos.Y, p.Color(), b.skinTexture())
	}
}

func (b *Board) skinTexture() image.Point {
	if len(b.tuning.Skins) == 0 {
		return image.Point{}
	}
	return b.tuning.Skins[b.skin%len(b.tuning.Skins)]
}

func (b *Board) State() State { return b.state }
func (b *Board) Score() int { return b.score }
func (b *Board) Lines() int { return b.lines }
func (b *Board) Level() int { return b.level }
func (b *Board) Layout() Layout { return b.layout }
func (b *Board) Tuning() Tuning { return b.tuning }
func (b *Board) Size() image.Point { return image.Pt(b.grid.Width(), b.grid.Height()) }
func (b *Board) Occupied(x, y int) bool { return b.grid.Occupied(x, y) }

// Color returns the cell color and whether the cell is occupied.
func (b *Board) Color(x, y int) (color.RGBA, bool) {
	c := b.grid.Cell(x, y)
	return c.Color, c.Occupied
}

// TextureOffset returns the atlas tile of the cell and whether the cell is
// occupied.
func (b *Board) TextureOffset(x, y int) (image.Point, bool) {
	c := b.grid.Cell(x, y)
	return c.Texture, c.Occupied
}

// Hold returns the kind waiting in the hold slot.
func (b *Board) Hold() (piece.Kind, bool) {
	if b.hold == nil {
		return 0, false
	}
	return b.hold.Kind(), true
}

// Next returns the kind shown in the preview.
func (b *Board) Next() (piece.Kind, bool) {
	if b.next == nil {
		return 0, false
	}
	return b.next.Kind(), true
}

// FallingInfo is a read-only snapshot of the active piece.
type FallingInfo struct {
	Kind     piece.Kind
	Rotation piece.Angle
	CanHold  bool
	Cells    []LiveCell
	Bounds   image.Rectangle
}

// Falling returns a snapshot of the active piece, if there is one.
func (b *Board) Falling() (FallingInfo, bool) {
	f := b.falling
	if f == nil {
		return FallingInfo{}, false
	}
	return FallingInfo{
		Kind:     f.Piece().Kind(),
		Rotation: f.Rotation(),
		CanHold:  f.CanSwitchForHold(),
		Cells:    f.Cells(),
		Bounds:   f.Bounds(),
	}, true
}

// ClearingRows returns the rows waiting to collapse while Clearing.
func (b *Board) ClearingRows() []int {
	if b.clear == nil {
		return nil
	}
	return append([]int(nil), b.clear.rows...)
}
