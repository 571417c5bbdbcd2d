package board

import (
	"image"
	"image/color"
	"time"
)

// Tuning holds the gameplay constants.
type Tuning struct {
	// FallInterval is the gravity period before the per-level reduction.
	FallInterval time.Duration
	// FallStepPerLevel is subtracted from FallInterval once per level.
	FallStepPerLevel time.Duration
	// FallFloor clamps the reduced interval when positive. Zero leaves the
	// curve unbounded.
	FallFloor time.Duration
	// RepeatInterval gates held left/right/down.
	RepeatInterval time.Duration

	// FadeStep is added to every color channel per clearing tick.
	FadeStep      uint8
	PointsPerLine int
	LinesPerLevel int

	// LevelsPerSkin is how many levels pass between texture swaps.
	LevelsPerSkin int
	// Skins are atlas tile offsets cycled through as the level rises.
	Skins         []image.Point
	BorderTexture image.Point
	BorderColor   color.RGBA
}

// DefaultTuning returns the classic constants.
func DefaultTuning() Tuning {
	return Tuning{
		FallInterval:     1000 * time.Millisecond,
		FallStepPerLevel: 5 * time.Millisecond,
		RepeatInterval:   50 * time.Millisecond,
		FadeStep:         25,
		PointsPerLine:    100,
		LinesPerLevel:    10,
		LevelsPerSkin:    5,
		Skins:            []image.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
		BorderTexture:    image.Point{},
		BorderColor:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// withDefaults fills the fields a board cannot run without.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.FadeStep == 0 {
		t.FadeStep = d.FadeStep
	}
	if t.LinesPerLevel <= 0 {
		t.LinesPerLevel = d.LinesPerLevel
	}
	if t.LevelsPerSkin <= 0 {
		t.LevelsPerSkin = d.LevelsPerSkin
	}
	if t.BorderColor == (color.RGBA{}) {
		t.BorderColor = d.BorderColor
	}
	return t
}

// FallIntervalAt returns the gravity period for level.
func (t Tuning) FallIntervalAt(level int) time.Duration {
	iv := t.FallInterval - time.Duration(level)*t.FallStepPerLevel
	if t.FallFloor > 0 && iv < t.FallFloor {
		iv = t.FallFloor
	}
	return iv
}
