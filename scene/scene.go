// Package scene samples a board into a backend-free description of one frame.
// Both the Ebiten and the terminal frontends draw from it.
package scene

import (
	"image"
	"image/color"

	"github.com/plus3/netris/board"
	"golang.org/x/text/message"
)

// Tile is one occupied grid cell.
type Tile struct {
	Pos     image.Point
	Color   color.RGBA
	Texture image.Point
}

// Label is a line of text anchored at a cell. Centered labels are centered
// horizontally on the anchor's cell.
type Label struct {
	Pos      image.Point
	Text     string
	Centered bool
}

// Scene is everything drawn for one frame.
type Scene struct {
	Size   image.Point
	Tiles  []Tile
	Labels []Label
	// Dim darkens the play field behind an overlay prompt.
	Dim bool
}

// Compose samples every cell of b once. p formats numbers.
func Compose(b *board.Board, p *message.Printer) Scene {
	size := b.Size()
	s := Scene{Size: size}
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c, ok := b.Color(x, y)
			if !ok {
				continue
			}
			tex, _ := b.TextureOffset(x, y)
			s.Tiles = append(s.Tiles, Tile{Pos: image.Pt(x, y), Color: c, Texture: tex})
		}
	}

	l := b.Layout()
	s.Labels = append(s.Labels,
		Label{Pos: l.HoldLabel, Text: "HOLD"},
		Label{Pos: l.NextLabel, Text: "NEXT"},
		Label{Pos: l.Score, Text: "SCORE"},
		Label{Pos: l.Score.Add(image.Pt(0, 1)), Text: p.Sprintf("%d", b.Score())},
		Label{Pos: l.Lines, Text: "LINES"},
		Label{Pos: l.Lines.Add(image.Pt(0, 1)), Text: p.Sprintf("%d", b.Lines())},
		Label{Pos: l.Level, Text: "LEVEL"},
		Label{Pos: l.Level.Add(image.Pt(0, 1)), Text: p.Sprintf("%d", b.Level())},
	)

	for i, line := range overlay(b, p) {
		s.Dim = true
		s.Labels = append(s.Labels, Label{Pos: l.Overlay.Add(image.Pt(0, i)), Text: line, Centered: true})
	}
	return s
}

// overlay returns the prompt lines shown over the field for b's state.
func overlay(b *board.Board, p *message.Printer) []string {
	switch b.State() {
	case board.Ready:
		return []string{"NETRIS", "PRESS ENTER"}
	case board.Paused:
		return []string{"PAUSED"}
	case board.Trapped:
		return []string{"GAME OVER", p.Sprintf("SCORE %d", b.Score()), "PRESS ENTER"}
	}
	return nil
}
