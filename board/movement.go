package board

import (
	"image"

	"github.com/plus3/netris/piece"
)

// Spawn moves the previewed piece into play and refills the preview. It
// reports false, leaving the board Trapped, when the spawn cells are taken.
func (b *Board) Spawn() bool {
	if b.state != Playing || b.falling != nil {
		return false
	}
	p := b.next
	if p == nil {
		p = piece.New(b.source.Next())
	}
	b.next = piece.New(b.source.Next())
	b.drawPreview(b.layout.NextFrame, b.layout.NextAnchor, b.next)
	return b.place(p)
}

// place puts p at the spawn pivot, or traps the board if any of its cells is
// already occupied.
func (b *Board) place(p piece.Piece) bool {
	offsets := p.CellOffsets()
	for _, off := range offsets {
		pos := b.layout.Spawn.Add(off)
		if b.grid.Occupied(pos.X, pos.Y) {
			b.state = Trapped
			return false
		}
	}

	f := NewFallingPiece(p)
	tex := b.skinTexture()
	for n, off := range offsets {
		pos := b.layout.Spawn.Add(off)
		b.grid.Set(pos.X, pos.Y, p.Color(), tex)
		f.AddCell(n, b.grid.ID(pos.X, pos.Y), pos.X, pos.Y, p.Color(), tex)
	}
	b.falling = f
	b.fallTimer = 0
	return true
}

func (b *Board) active() bool {
	return b.state == Playing && b.falling != nil
}

// blocked reports whether pos cannot take a cell of the falling piece.
func (b *Board) blocked(pos image.Point) bool {
	if !pos.In(b.layout.Field) {
		return true
	}
	return b.grid.Occupied(pos.X, pos.Y) && !b.falling.IsMyCell(b.grid.ID(pos.X, pos.Y))
}

func (b *Board) fits(delta image.Point) bool {
	for _, c := range b.falling.Cells() {
		if b.blocked(c.Pos.Add(delta)) {
			return false
		}
	}
	return true
}

// relocate moves one falling cell. The destination must already be free of
// everything except cells that have been moved out of the way.
func (b *Board) relocate(from, to image.Point) {
	oldID := b.grid.ID(from.X, from.Y)
	lc, ok := b.falling.CellAt(oldID)
	if !ok {
		panic("board: relocating a cell the falling piece does not own")
	}
	b.grid.Clear(from.X, from.Y)
	b.grid.Set(to.X, to.Y, lc.Color, lc.Texture)
	b.falling.MoveCell(lc.Number, oldID, from.X, from.Y, b.grid.ID(to.X, to.Y), to.X, to.Y, lc.Color, lc.Texture)
}

func (b *Board) MoveLeft() bool {
	if !b.active() || !b.fits(image.Pt(-1, 0)) {
		return false
	}
	f := b.falling
	lo, hi := f.MinX(), f.MaxX()
	for x := lo; x <= hi; x++ {
		for _, y := range f.CellsAtColumn(x) {
			b.relocate(image.Pt(x, y), image.Pt(x-1, y))
		}
	}
	return true
}

func (b *Board) MoveRight() bool {
	if !b.active() || !b.fits(image.Pt(1, 0)) {
		return false
	}
	f := b.falling
	lo, hi := f.MinX(), f.MaxX()
	for x := hi; x >= lo; x-- {
		for _, y := range f.CellsAtColumn(x) {
			b.relocate(image.Pt(x, y), image.Pt(x+1, y))
		}
	}
	return true
}

// MoveDown drops the piece one row. When the row below is blocked the piece
// locks in place, full rows are queued and false is returned.
func (b *Board) MoveDown() bool {
	if !b.active() {
		return false
	}
	if !b.fits(image.Pt(0, 1)) {
		b.lock()
		return false
	}
	f := b.falling
	lo, hi := f.MinY(), f.MaxY()
	for y := hi; y >= lo; y-- {
		for _, x := range f.CellsAtRow(y) {
			b.relocate(image.Pt(x, y), image.Pt(x, y+1))
		}
	}
	return true
}

// Drop moves the piece down until it locks and returns the rows travelled.
func (b *Board) Drop() int {
	n := 0
	for b.MoveDown() {
		n++
	}
	return n
}

// Rotate turns the piece a quarter clockwise if every rotated cell fits.
// Blocked rotations leave cells and angle untouched.
func (b *Board) Rotate() bool {
	if !b.active() {
		return false
	}
	f := b.falling
	target := f.Rotation().Next()
	deltas := f.Piece().RotatedOffsets(target)
	cells := f.Cells()
	for _, c := range cells {
		if b.blocked(c.Pos.Add(deltas[c.Number])) {
			return false
		}
	}

	for _, c := range cells {
		b.grid.Clear(c.Pos.X, c.Pos.Y)
		f.RemoveCell(c.ID, c.Pos.X, c.Pos.Y)
	}
	for _, c := range cells {
		pos := c.Pos.Add(deltas[c.Number])
		b.grid.Set(pos.X, pos.Y, c.Color, c.Texture)
		f.AddCell(c.Number, b.grid.ID(pos.X, pos.Y), pos.X, pos.Y, c.Color, c.Texture)
	}
	f.SetRotation(target)
	return true
}

// HoldSwap parks the falling piece in the hold slot and brings in the
// previously held piece, or the next one when the slot was empty. Only one
// swap is allowed per spawned piece.
func (b *Board) HoldSwap() bool {
	if !b.active() || !b.falling.CanSwitchForHold() {
		return false
	}
	f := b.falling
	for _, c := range f.Cells() {
		b.grid.Clear(c.Pos.X, c.Pos.Y)
	}
	b.falling = nil

	incoming := b.hold
	b.hold = f.Piece().Clone()
	b.drawPreview(b.layout.HoldFrame, b.layout.HoldAnchor, b.hold)

	var ok bool
	if incoming != nil {
		ok = b.place(incoming)
	} else {
		ok = b.Spawn()
	}
	if ok {
		b.falling.SetSwitchedForHold()
	}
	return true
}

func (b *Board) lock() {
	b.falling = nil
	b.queueFullRows()
}
