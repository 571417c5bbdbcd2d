package board

import "image"

const (
	GridWidth  = 32
	GridHeight = 22

	FieldX      = 11
	FieldY      = 1
	FieldWidth  = 10
	FieldHeight = 20
)

// Layout places the play field, the preview panels and the text anchors on
// the grid. All coordinates are in cells.
type Layout struct {
	// Field is the play area, excluding its border.
	Field image.Rectangle
	// Border is the field plus its one-cell frame.
	Border image.Rectangle
	// Spawn is the pivot new pieces are placed around.
	Spawn image.Point

	HoldFrame  image.Rectangle
	HoldAnchor image.Point
	HoldLabel  image.Point
	NextFrame  image.Rectangle
	NextAnchor image.Point
	NextLabel  image.Point

	// Stat labels. Values are drawn one row below their label.
	Score image.Point
	Lines image.Point
	Level image.Point

	// Overlay is where state prompts are centered.
	Overlay image.Point
}

// DefaultLayout is the classic 32x22 arrangement.
func DefaultLayout() Layout {
	field := image.Rect(FieldX, FieldY, FieldX+FieldWidth, FieldY+FieldHeight)
	return Layout{
		Field:      field,
		Border:     field.Inset(-1),
		Spawn:      image.Pt(FieldX-1+FieldWidth/2, FieldY),
		HoldFrame:  image.Rect(2, 1, 9, 7),
		HoldAnchor: image.Pt(5, 2),
		HoldLabel:  image.Pt(3, 7),
		NextFrame:  image.Rect(23, 1, 30, 7),
		NextAnchor: image.Pt(26, 2),
		NextLabel:  image.Pt(24, 7),
		Score:      image.Pt(23, 9),
		Lines:      image.Pt(23, 12),
		Level:      image.Pt(23, 15),
		Overlay:    image.Pt(FieldX+FieldWidth/2, FieldY+FieldHeight/2),
	}
}

// frameInterior is the drawable area inside a one-cell frame.
func frameInterior(frame image.Rectangle) image.Rectangle {
	return frame.Inset(1)
}
