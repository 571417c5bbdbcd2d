package board

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridIDRoundTrip(t *testing.T) {
	g := NewGrid(GridWidth, GridHeight)
	for _, p := range []image.Point{{0, 0}, {31, 0}, {0, 21}, {31, 21}, {15, 7}} {
		id := g.ID(p.X, p.Y)
		assert.Equal(t, p.Y*GridWidth+p.X, id)
		assert.Equal(t, p, g.Pos(id))
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(4, 3)
	tests := []struct {
		name string
		fn   func()
	}{
		{"negative x", func() { g.Occupied(-1, 0) }},
		{"x past width", func() { g.Set(4, 0, color.RGBA{}, image.Point{}) }},
		{"y past height", func() { g.Clear(0, 3) }},
		{"bad id", func() { g.Pos(12) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
	assert.Panics(t, func() { NewGrid(0, 1) })
}

func TestGridSetAndClear(t *testing.T) {
	g := NewGrid(4, 4)
	red := color.RGBA{R: 255, A: 255}

	g.Set(1, 2, red, image.Pt(2, 0))
	assert.True(t, g.Occupied(1, 2))
	assert.Equal(t, Cell{Occupied: true, Color: red, Texture: image.Pt(2, 0)}, g.Cell(1, 2))

	g.SetColor(1, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	g.SetTexture(1, 2, image.Pt(3, 0))
	assert.Equal(t, uint8(2), g.Cell(1, 2).Color.G)
	assert.Equal(t, image.Pt(3, 0), g.Cell(1, 2).Texture)

	g.Clear(1, 2)
	assert.Equal(t, Cell{}, g.Cell(1, 2))
}

func TestGridClearRectClips(t *testing.T) {
	g := NewGrid(4, 4)
	for y := range 4 {
		for x := range 4 {
			g.Set(x, y, color.RGBA{A: 255}, image.Point{})
		}
	}

	g.ClearRect(image.Rect(2, 2, 10, 10))

	for y := range 4 {
		for x := range 4 {
			want := x < 2 || y < 2
			assert.Equal(t, want, g.Occupied(x, y), "(%d,%d)", x, y)
		}
	}

	g.Reset()
	assert.False(t, g.Occupied(0, 0))
}
