// Package audio synthesizes the netris music and defines the Jukebox the game
// drives in lock-step with the board state.
package audio

import "time"

// Theme names one looping piece of music.
type Theme int

const (
	ThemeMenu Theme = iota
	ThemeGame
)

func (t Theme) String() string {
	switch t {
	case ThemeMenu:
		return "menu"
	case ThemeGame:
		return "game"
	default:
		return "unknown"
	}
}

// Themes lists every built-in theme.
func Themes() []Theme { return []Theme{ThemeMenu, ThemeGame} }

// Note is one tone of a melody. A zero Freq is a rest.
type Note struct {
	Freq  float64
	Beats float64
}

// Melody is a loop of notes played at Tempo beats per minute.
type Melody struct {
	Tempo float64
	Notes []Note
}

// Beat returns the length of one beat.
func (m Melody) Beat() time.Duration {
	if m.Tempo <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / m.Tempo)
}

// Duration returns the length of one pass through the melody.
func (m Melody) Duration() time.Duration {
	var beats float64
	for _, n := range m.Notes {
		beats += n.Beats
	}
	return time.Duration(beats * float64(m.Beat()))
}

const (
	rest = 0.0
	a3   = 220.00
	c4   = 261.63
	e4   = 329.63
	g4   = 392.00
	a4   = 440.00
	b4   = 493.88
	c5   = 523.25
	d5   = 587.33
	e5   = 659.25
	f5   = 698.46
	g5   = 783.99
	a5   = 880.00
)

var melodies = map[Theme]Melody{
	ThemeMenu: {
		Tempo: 96,
		Notes: []Note{
			{c4, 1}, {e4, 1}, {g4, 1}, {c5, 1},
			{g4, 1}, {e4, 1}, {c4, 2},
			{a3, 1}, {c4, 1}, {e4, 1}, {a4, 1},
			{e4, 1}, {c4, 1}, {a3, 1}, {rest, 1},
		},
	},
	// Korobeiniki, first two phrases.
	ThemeGame: {
		Tempo: 144,
		Notes: []Note{
			{e5, 1}, {b4, 0.5}, {c5, 0.5}, {d5, 1}, {c5, 0.5}, {b4, 0.5},
			{a4, 1}, {a4, 0.5}, {c5, 0.5}, {e5, 1}, {d5, 0.5}, {c5, 0.5},
			{b4, 1.5}, {c5, 0.5}, {d5, 1}, {e5, 1},
			{c5, 1}, {a4, 1}, {a4, 1}, {rest, 1},
			{rest, 0.5}, {d5, 1}, {f5, 0.5}, {a5, 1}, {g5, 0.5}, {f5, 0.5},
			{e5, 1.5}, {c5, 0.5}, {e5, 1}, {d5, 0.5}, {c5, 0.5},
			{b4, 1}, {b4, 0.5}, {c5, 0.5}, {d5, 1}, {e5, 1},
			{c5, 1}, {a4, 1}, {a4, 1}, {rest, 1},
		},
	},
}

// Builtin returns the melody for t. Unknown themes yield an empty melody.
func Builtin(t Theme) Melody {
	return melodies[t]
}
