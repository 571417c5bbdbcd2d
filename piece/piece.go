// Package piece defines the seven immutable falling-block shapes: their color,
// their spawn layout relative to a pivot and their rotation tables.
package piece

import (
	"image"
	"image/color"
)

// Kind identifies one of the seven shapes.
type Kind uint8

const (
	Bar Kind = iota
	Square
	Tee
	LeftEll
	RightEll
	LeftStair
	RightStair
)

// Count is the number of distinct kinds.
const Count = 7

var kindNames = [Count]string{"Bar", "Square", "Tee", "LeftEll", "RightEll", "LeftStair", "RightStair"}

func (k Kind) String() string {
	if int(k) < Count {
		return kindNames[k]
	}
	return "Unknown"
}

// Valid reports whether k names one of the seven shapes.
func (k Kind) Valid() bool {
	return int(k) < Count
}

// Angle is an absolute orientation in degrees: 0, 90, 180 or 270.
type Angle int

const (
	Angle0   Angle = 0
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// Next returns the orientation a quarter turn clockwise from a.
func (a Angle) Next() Angle {
	return (a + 90) % 360
}

func (a Angle) index() (int, bool) {
	if a < 0 || a >= 360 || a%90 != 0 {
		return 0, false
	}
	return int(a / 90), true
}

// Offsets holds one coordinate per cell number (0-3).
type Offsets [4]image.Point

// Piece is the capability set every shape provides.
type Piece interface {
	Kind() Kind
	Color() color.RGBA
	// CellOffsets is the spawn layout relative to the pivot.
	CellOffsets() Offsets
	// RotatedOffsets returns, per cell number, the delta that moves a cell from
	// the orientation a quarter turn before target into target. Callers track
	// the current angle and always ask with the new absolute angle.
	RotatedOffsets(target Angle) Offsets
	// DisplayOffset nudges the shape when it is drawn in a preview panel.
	DisplayOffset() image.Point
	Clone() Piece
}
