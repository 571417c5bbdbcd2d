package board

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/netris/piece"
)

// LiveCell is one grid cell owned by the falling piece. Number is the cell's
// stable identity within the piece and indexes the rotation tables.
type LiveCell struct {
	Number  int
	ID      int
	Pos     image.Point
	Color   color.RGBA
	Texture image.Point
}

// FallingPiece tracks the cells of the active piece, indexed by position id,
// by row and by column. Row and column buckets hold sorted coordinates and are
// deleted as soon as they become empty so the bounding box only ever reflects
// live cells.
type FallingPiece struct {
	piece    piece.Piece
	rotation piece.Angle
	switched bool

	byID  *intmap.Map[int, LiveCell]
	byRow *intmap.Map[int, []int] // y -> sorted x
	byCol *intmap.Map[int, []int] // x -> sorted y

	minX, maxX int
	minY, maxY int
}

// NewFallingPiece returns an empty tracker for p at angle 0.
func NewFallingPiece(p piece.Piece) *FallingPiece {
	return &FallingPiece{
		piece: p,
		byID:  intmap.New[int, LiveCell](4),
		byRow: intmap.New[int, []int](4),
		byCol: intmap.New[int, []int](4),
	}
}

func (f *FallingPiece) Piece() piece.Piece { return f.piece }

func (f *FallingPiece) Rotation() piece.Angle { return f.rotation }

func (f *FallingPiece) SetRotation(a piece.Angle) { f.rotation = a }

// CanSwitchForHold reports whether this piece may still be swapped into the
// hold slot.
func (f *FallingPiece) CanSwitchForHold() bool { return !f.switched }

func (f *FallingPiece) SetSwitchedForHold() { f.switched = true }

// Len returns the number of registered cells.
func (f *FallingPiece) Len() int { return f.byID.Len() }

// AddCell registers a cell and refreshes the bounding box.
func (f *FallingPiece) AddCell(number, id, x, y int, c color.RGBA, texture image.Point) {
	if _, ok := f.byID.Get(id); ok {
		panic(fmt.Sprintf("board: falling piece already owns cell %d", id))
	}
	f.byID.Put(id, LiveCell{Number: number, ID: id, Pos: image.Pt(x, y), Color: c, Texture: texture})
	insertSorted(f.byRow, y, x)
	insertSorted(f.byCol, x, y)
	f.recomputeBounds()
}

// RemoveCell deregisters a cell and refreshes the bounding box.
func (f *FallingPiece) RemoveCell(id, x, y int) {
	if !f.byID.Del(id) {
		panic(fmt.Sprintf("board: falling piece does not own cell %d", id))
	}
	removeSorted(f.byRow, y, x)
	removeSorted(f.byCol, x, y)
	f.recomputeBounds()
}

// MoveCell relocates a cell. It is RemoveCell followed by AddCell.
func (f *FallingPiece) MoveCell(number, oldID, oldX, oldY, newID, newX, newY int, c color.RGBA, texture image.Point) {
	f.RemoveCell(oldID, oldX, oldY)
	f.AddCell(number, newID, newX, newY, c, texture)
}

func (f *FallingPiece) IsMyCell(id int) bool {
	_, ok := f.byID.Get(id)
	return ok
}

func (f *FallingPiece) CellAt(id int) (LiveCell, bool) {
	return f.byID.Get(id)
}

// Cells returns every live cell ordered by cell number.
func (f *FallingPiece) Cells() []LiveCell {
	cells := make([]LiveCell, 0, f.byID.Len())
	f.byID.ForEach(func(_ int, c LiveCell) bool {
		cells = append(cells, c)
		return true
	})
	slices.SortFunc(cells, func(a, b LiveCell) int { return a.Number - b.Number })
	return cells
}

// CellsAtColumn returns a copy of the rows the piece occupies in column x.
func (f *FallingPiece) CellsAtColumn(x int) []int {
	ys, _ := f.byCol.Get(x)
	return slices.Clone(ys)
}

// CellsAtRow returns a copy of the columns the piece occupies in row y.
func (f *FallingPiece) CellsAtRow(y int) []int {
	xs, _ := f.byRow.Get(y)
	return slices.Clone(xs)
}

func (f *FallingPiece) MinX() int { return f.minX }
func (f *FallingPiece) MaxX() int { return f.maxX }
func (f *FallingPiece) MinY() int { return f.minY }
func (f *FallingPiece) MaxY() int { return f.maxY }

// Bounds returns the bounding box as a half-open rectangle. It is empty when
// the piece owns no cells.
func (f *FallingPiece) Bounds() image.Rectangle {
	if f.byID.Len() == 0 {
		return image.Rectangle{}
	}
	return image.Rect(f.minX, f.minY, f.maxX+1, f.maxY+1)
}

func (f *FallingPiece) recomputeBounds() {
	f.minX, f.maxX = keyRange(f.byCol)
	f.minY, f.maxY = keyRange(f.byRow)
}

func keyRange(m *intmap.Map[int, []int]) (lo, hi int) {
	first := true
	m.ForEach(func(k int, _ []int) bool {
		if first {
			lo, hi = k, k
			first = false
			return true
		}
		lo = min(lo, k)
		hi = max(hi, k)
		return true
	})
	return lo, hi
}

func insertSorted(m *intmap.Map[int, []int], key, v int) {
	vs, _ := m.Get(key)
	i, found := slices.BinarySearch(vs, v)
	if found {
		return
	}
	m.Put(key, slices.Insert(vs, i, v))
}

func removeSorted(m *intmap.Map[int, []int], key, v int) {
	vs, ok := m.Get(key)
	if !ok {
		return
	}
	i, found := slices.BinarySearch(vs, v)
	if !found {
		return
	}
	vs = slices.Delete(vs, i, i+1)
	if len(vs) == 0 {
		m.Del(key)
		return
	}
	m.Put(key, vs)
}
