package piece

import (
	"image"
	"image/color"
)

type shape struct {
	kind      Kind
	color     color.RGBA
	cells     Offsets
	rotations [4]Offsets
	display   image.Point
}

func (s *shape) Kind() Kind { return s.kind }
func (s *shape) Color() color.RGBA { return s.color }
func (s *shape) CellOffsets() Offsets { return s.cells }
func (s *shape) DisplayOffset() image.Point { return s.display }

func (s *shape) RotatedOffsets(target Angle) Offsets {
	idx, ok := target.index()
	if !ok {
		return s.cells
	}
	return s.rotations[idx]
}

func (s *shape) Clone() Piece {
	c := *s
	return &c
}

func pt(x, y int) image.Point { return image.Point{X: x, Y: y} }

// catalog is indexed by Kind. Rotation tables are ordered 0, 90, 180, 270.
var catalog = [Count]shape{
	Bar: {
		kind:  Bar,
		color: color.RGBA{R: 0, G: 255, B: 255, A: 255},
		cells: Offsets{pt(0, 0), pt(0, 1), pt(0, 2), pt(0, 3)},
		rotations: [4]Offsets{
			{pt(2, -1), pt(1, 0), pt(0, 1), pt(-1, 2)},
			{pt(1, 2), pt(0, 1), pt(-1, 0), pt(-2, -1)},
			{pt(-2, 1), pt(-1, 0), pt(0, -1), pt(1, -2)},
			{pt(-1, -2), pt(0, -1), pt(1, 0), pt(2, 1)},
		},
		display: pt(0, 0),
	},
	Square: {
		kind:    Square,
		color:   color.RGBA{R: 255, G: 255, B: 0, A: 255},
		cells:   Offsets{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)},
		display: pt(-1, 1),
	},
	Tee: {
		kind:  Tee,
		color: color.RGBA{R: 147, G: 112, B: 219, A: 255},
		cells: Offsets{pt(0, 0), pt(1, 0), pt(2, 0), pt(1, 1)},
		rotations: [4]Offsets{
			{pt(-1, -1), pt(0, 0), pt(1, 1), pt(-1, 1)},
			{pt(1, -1), pt(0, 0), pt(-1, 1), pt(-1, -1)},
			{pt(1, 1), pt(0, 0), pt(-1, -1), pt(1, -1)},
			{pt(-1, 1), pt(0, 0), pt(1, -1), pt(1, 1)},
		},
		display: pt(-1, 1),
	},
	LeftEll: {
		kind:  LeftEll,
		color: color.RGBA{R: 65, G: 105, B: 225, A: 255},
		cells: Offsets{pt(0, 0), pt(0, 1), pt(0, 2), pt(-1, 2)},
		rotations: [4]Offsets{
			{pt(1, -1), pt(0, 0), pt(-1, 1), pt(-2, 0)},
			{pt(1, 1), pt(0, 0), pt(-1, -1), pt(0, -2)},
			{pt(-1, 1), pt(0, 0), pt(1, -1), pt(2, 0)},
			{pt(-1, -1), pt(0, 0), pt(1, 1), pt(0, 2)},
		},
		display: pt(0, 0),
	},
	RightEll: {
		kind:  RightEll,
		color: color.RGBA{R: 255, G: 165, B: 0, A: 255},
		cells: Offsets{pt(0, 0), pt(0, 1), pt(0, 2), pt(1, 2)},
		rotations: [4]Offsets{
			{pt(1, -1), pt(0, 0), pt(-1, 1), pt(0, 2)},
			{pt(1, 1), pt(0, 0), pt(-1, -1), pt(-2, 0)},
			{pt(-1, 1), pt(0, 0), pt(1, -1), pt(0, -2)},
			{pt(-1, -1), pt(0, 0), pt(1, 1), pt(2, 0)},
		},
		display: pt(-1, 0),
	},
	LeftStair: {
		kind:  LeftStair,
		color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
		cells: Offsets{pt(0, 0), pt(1, 0), pt(1, 1), pt(2, 1)},
		rotations: [4]Offsets{
			{pt(-1, -1), pt(0, 0), pt(-1, 1), pt(0, 2)},
			{pt(1, -1), pt(0, 0), pt(-1, -1), pt(-2, 0)},
			{pt(1, 1), pt(0, 0), pt(1, -1), pt(0, -2)},
			{pt(-1, 1), pt(0, 0), pt(1, 1), pt(2, 0)},
		},
		display: pt(-1, 1),
	},
	RightStair: {
		kind:  RightStair,
		color: color.RGBA{R: 50, G: 205, B: 50, A: 255},
		cells: Offsets{pt(0, 0), pt(-1, 0), pt(-1, 1), pt(-2, 1)},
		rotations: [4]Offsets{
			{pt(1, 1), pt(0, 0), pt(-1, 1), pt(-2, 0)},
			{pt(-1, 1), pt(0, 0), pt(-1, -1), pt(0, -2)},
			{pt(-1, -1), pt(0, 0), pt(1, -1), pt(2, 0)},
			{pt(1, -1), pt(0, 0), pt(1, 1), pt(0, 2)},
		},
		display: pt(1, 1),
	},
}

// New returns a fresh instance of the given kind. It panics on an unknown kind.
func New(kind Kind) Piece {
	if !kind.Valid() {
		panic("piece: unknown kind " + kind.String())
	}
	s := catalog[kind]
	return &s
}

// All lists every kind in catalog order.
func All() []Kind {
	kinds := make([]Kind, Count)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}
