package board

import (
	"fmt"
	"image"
	"image/color"
)

// Cell is one slot of the board. Color and Texture are only meaningful while
// the cell is occupied.
type Cell struct {
	Occupied bool
	Color    color.RGBA
	Texture  image.Point
}

// Grid is a fixed-size flat array of cells addressed by (x, y) or by the
// derived id y*width+x.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns an empty grid of the given size.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }

// Bounds returns the rectangle covering every addressable cell.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// ID returns the position id of (x, y). It panics when the coordinate lies
// outside the grid, which only happens if movement logic is broken.
func (g *Grid) ID(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("board: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Pos is the inverse of ID.
func (g *Grid) Pos(id int) image.Point {
	if id < 0 || id >= len(g.cells) {
		panic(fmt.Sprintf("board: cell id %d outside %dx%d grid", id, g.width, g.height))
	}
	return image.Pt(id%g.width, id/g.width)
}

func (g *Grid) Cell(x, y int) Cell {
	return g.cells[g.ID(x, y)]
}

func (g *Grid) Occupied(x, y int) bool {
	return g.cells[g.ID(x, y)].Occupied
}

// Set marks the cell occupied with the given color and texture offset.
func (g *Grid) Set(x, y int, c color.RGBA, texture image.Point) {
	g.cells[g.ID(x, y)] = Cell{Occupied: true, Color: c, Texture: texture}
}

// SetColor recolors a cell without touching its occupancy.
func (g *Grid) SetColor(x, y int, c color.RGBA) {
	g.cells[g.ID(x, y)].Color = c
}

// SetTexture changes the texture offset of a cell without touching its
// occupancy.
func (g *Grid) SetTexture(x, y int, texture image.Point) {
	g.cells[g.ID(x, y)].Texture = texture
}

// Clear empties a cell.
func (g *Grid) Clear(x, y int) {
	g.cells[g.ID(x, y)] = Cell{}
}

// ClearRect empties every cell in r. r is clipped to the grid.
func (g *Grid) ClearRect(r image.Rectangle) {
	r = r.Intersect(g.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.cells[y*g.width+x] = Cell{}
		}
	}
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	clear(g.cells)
}
