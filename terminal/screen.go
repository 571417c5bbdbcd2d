// Package terminal runs boards in a terminal with tcell. Each grid cell is
// two columns wide so cells come out roughly square.
package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/scene"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CellColumns is the number of terminal columns per grid cell.
const CellColumns = 2

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

// glyphs indexes cell pairs by atlas tile column.
var glyphs = [...][CellColumns]rune{
	{'█', '█'},
	{'[', ']'},
	{'▓', '▓'},
	{'▒', '▒'},
}

var (
	backgroundColor = tcell.NewRGBColor(16, 16, 24)
	labelColor      = tcell.NewRGBColor(240, 240, 240)
)

type Screen struct {
	canvas  Canvas
	printer *message.Printer
	origin  image.Point
}

func NewScreen(c Canvas) *Screen {
	return &Screen{canvas: c, printer: message.NewPrinter(language.English)}
}

// Draw samples b and shows it centered on the canvas.
func (s *Screen) Draw(b *board.Board) {
	s.DrawScene(scene.Compose(b, s.printer), b.Layout().Field)
}

func (s *Screen) DrawScene(sc scene.Scene, field image.Rectangle) {
	s.canvas.Clear()
	s.origin = s.center(sc.Size)

	base := tcell.StyleDefault.Background(backgroundColor)
	for y := 0; y < sc.Size.Y; y++ {
		for x := 0; x < sc.Size.X*CellColumns; x++ {
			s.put(image.Pt(x, y), ' ', base)
		}
	}

	for _, t := range sc.Tiles {
		style := base.Foreground(rgb(t.Color))
		if sc.Dim && t.Pos.In(field) {
			style = style.Dim(true)
		}
		g := glyph(t.Texture)
		for i, r := range g {
			s.put(image.Pt(t.Pos.X*CellColumns+i, t.Pos.Y), r, style)
		}
	}

	text := base.Foreground(labelColor).Bold(true)
	for _, l := range sc.Labels {
		s.drawLabel(l, text)
	}
	s.canvas.Show()
}

func (s *Screen) center(size image.Point) image.Point {
	w, h := s.canvas.Size()
	return image.Pt(max(0, (w-size.X*CellColumns)/2), max(0, (h-size.Y)/2))
}

func (s *Screen) put(p image.Point, r rune, style tcell.Style) {
	p = p.Add(s.origin)
	s.canvas.SetContent(p.X, p.Y, r, nil, style)
}

func (s *Screen) drawLabel(l scene.Label, style tcell.Style) {
	x := l.Pos.X * CellColumns
	if l.Centered {
		x += CellColumns/2 - runewidth.StringWidth(l.Text)/2
	}
	for _, r := range l.Text {
		s.put(image.Pt(x, l.Pos.Y), r, style)
		x += max(1, runewidth.RuneWidth(r))
	}
}

func glyph(texture image.Point) [CellColumns]rune {
	if texture.X < 0 || texture.X >= len(glyphs) {
		return glyphs[0]
	}
	return glyphs[texture.X]
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
