// Package render draws board scenes with Ebiten.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/scene"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	background = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	dimColor   = color.RGBA{A: 160}
	textColor  = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// Renderer draws boards with one atlas tile per cell.
type Renderer struct {
	atlas   *ebiten.Image
	tile    int
	cell    int
	face    text.Face
	printer *message.Printer
}

// NewRenderer draws cells of cell pixels from atlas tiles of tile pixels.
func NewRenderer(atlas *ebiten.Image, tile, cell int) *Renderer {
	return &Renderer{
		atlas:   atlas,
		tile:    tile,
		cell:    cell,
		face:    text.NewGoXFace(basicfont.Face7x13),
		printer: message.NewPrinter(language.English),
	}
}

// ScreenSize is the pixel size of a board of size cells.
func (r *Renderer) ScreenSize(size image.Point) (int, int) {
	return size.X * r.cell, size.Y * r.cell
}

func (r *Renderer) Draw(screen *ebiten.Image, b *board.Board) {
	r.DrawScene(screen, scene.Compose(b, r.printer), b.Layout().Field)
}

func (r *Renderer) DrawScene(screen *ebiten.Image, s scene.Scene, field image.Rectangle) {
	screen.Fill(background)

	for _, t := range s.Tiles {
		r.drawTile(screen, t)
	}

	if s.Dim {
		ps := r.pixels(field)
		vector.DrawFilledRect(screen, float32(ps.Min.X), float32(ps.Min.Y), float32(ps.Dx()), float32(ps.Dy()), dimColor, false)
	}

	for _, l := range s.Labels {
		r.drawLabel(screen, l)
	}
}

func (r *Renderer) pixels(cells image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: cells.Min.Mul(r.cell), Max: cells.Max.Mul(r.cell)}
}

func (r *Renderer) drawTile(screen *ebiten.Image, t scene.Tile) {
	src := image.Rectangle{Min: t.Texture.Mul(r.tile), Max: t.Texture.Add(image.Pt(1, 1)).Mul(r.tile)}
	img := r.atlas.SubImage(src).(*ebiten.Image)

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleWithColor(t.Color)
	op.GeoM.Scale(float64(r.cell)/float64(r.tile), float64(r.cell)/float64(r.tile))
	op.GeoM.Translate(float64(t.Pos.X*r.cell), float64(t.Pos.Y*r.cell))
	screen.DrawImage(img, &op)
}

func (r *Renderer) drawLabel(screen *ebiten.Image, l scene.Label) {
	op := &text.DrawOptions{}
	x := float64(l.Pos.X * r.cell)
	if l.Centered {
		x += float64(r.cell) / 2
		op.PrimaryAlign = text.AlignCenter
	}
	op.GeoM.Translate(x, float64(l.Pos.Y*r.cell))
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, l.Text, r.face, op)
}
