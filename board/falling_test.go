package board

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/plus3/netris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColor = color.RGBA{R: 10, G: 20, B: 30, A: 255}

func addAt(f *FallingPiece, n, x, y int) {
	f.AddCell(n, y*GridWidth+x, x, y, testColor, image.Point{})
}

func removeAt(f *FallingPiece, x, y int) {
	f.RemoveCell(y*GridWidth+x, x, y)
}

func TestFallingPieceBoundsFollowCells(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	f := NewFallingPiece(piece.New(piece.Tee))
	live := map[image.Point]bool{}

	for step := 0; step < 2000; step++ {
		p := image.Pt(rng.IntN(8), rng.IntN(8))
		if live[p] {
			removeAt(f, p.X, p.Y)
			delete(live, p)
		} else {
			addAt(f, step%4, p.X, p.Y)
			live[p] = true
		}

		require.Equal(t, len(live), f.Len())
		if len(live) == 0 {
			assert.True(t, f.Bounds().Empty())
			continue
		}
		minX, maxX, minY, maxY := 99, -1, 99, -1
		for q := range live {
			minX, maxX = min(minX, q.X), max(maxX, q.X)
			minY, maxY = min(minY, q.Y), max(maxY, q.Y)
		}
		require.Equal(t, []int{minX, maxX, minY, maxY}, []int{f.MinX(), f.MaxX(), f.MinY(), f.MaxY()}, "step %d", step)
		require.Equal(t, image.Rect(minX, minY, maxX+1, maxY+1), f.Bounds())
	}
}

func TestFallingPieceDropsEmptyBuckets(t *testing.T) {
	f := NewFallingPiece(piece.New(piece.Tee))
	addAt(f, 0, 3, 4)
	addAt(f, 1, 5, 4)
	addAt(f, 2, 3, 6)

	assert.Equal(t, []int{3, 5}, f.CellsAtRow(4))
	assert.Equal(t, []int{4, 6}, f.CellsAtColumn(3))
	assert.Equal(t, 6, f.MaxY())

	removeAt(f, 3, 6)

	assert.Empty(t, f.CellsAtRow(6))
	assert.Equal(t, []int{4}, f.CellsAtColumn(3))
	assert.Equal(t, 4, f.MaxY())
	assert.Equal(t, 4, f.MinY())

	removeAt(f, 5, 4)
	assert.Empty(t, f.CellsAtColumn(5))
	assert.Equal(t, 3, f.MaxX())
}

func TestFallingPieceIndexQueriesReturnCopies(t *testing.T) {
	f := NewFallingPiece(piece.New(piece.Bar))
	addAt(f, 0, 2, 2)
	addAt(f, 1, 2, 3)

	ys := f.CellsAtColumn(2)
	ys[0] = 100

	assert.Equal(t, []int{2, 3}, f.CellsAtColumn(2))
}

func TestFallingPieceMoveCell(t *testing.T) {
	f := NewFallingPiece(piece.New(piece.Bar))
	addAt(f, 0, 2, 2)
	addAt(f, 1, 2, 3)

	oldID, newID := 2*GridWidth+2, 2*GridWidth+3
	f.MoveCell(0, oldID, 2, 2, newID, 3, 2, testColor, image.Pt(1, 0))

	assert.False(t, f.IsMyCell(oldID))
	assert.True(t, f.IsMyCell(newID))
	c, ok := f.CellAt(newID)
	require.True(t, ok)
	assert.Equal(t, LiveCell{Number: 0, ID: newID, Pos: image.Pt(3, 2), Color: testColor, Texture: image.Pt(1, 0)}, c)
	assert.Equal(t, 2, f.MinX())
	assert.Equal(t, 3, f.MaxX())
}

func TestFallingPieceCellsOrderedByNumber(t *testing.T) {
	f := NewFallingPiece(piece.New(piece.Tee))
	addAt(f, 2, 9, 1)
	addAt(f, 0, 1, 9)
	addAt(f, 3, 4, 4)
	addAt(f, 1, 7, 7)

	cells := f.Cells()
	require.Len(t, cells, 4)
	for i, c := range cells {
		assert.Equal(t, i, c.Number)
	}
}

func TestFallingPieceMisuse(t *testing.T) {
	f := NewFallingPiece(piece.New(piece.Tee))
	addAt(f, 0, 1, 1)

	assert.Panics(t, func() { addAt(f, 1, 1, 1) })
	assert.Panics(t, func() { removeAt(f, 2, 2) })
}

func TestFallingPieceHoldFlag(t *testing.T) {
	f := NewFallingPiece(piece.New(piece.Square))
	assert.True(t, f.CanSwitchForHold())
	f.SetSwitchedForHold()
	assert.False(t, f.CanSwitchForHold())
	assert.Equal(t, piece.Square, f.Piece().Kind())
	assert.Equal(t, piece.Angle0, f.Rotation())
}
