package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// SheetName is the cache key of the block atlas.
const SheetName = "sheet"

// SheetTiles is the number of tiles in the generated atlas: the border tile
// at column 0 followed by three skins.
const SheetTiles = 4

// Atlas draws the block atlas as one row of tile x tile squares. Tiles are
// grayscale so that renderers can tint them with the cell color.
func Atlas(tile int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tile*SheetTiles, tile))
	for i := range SheetTiles {
		r := image.Rect(i*tile, 0, (i+1)*tile, tile)
		sub := img.SubImage(r).(*image.RGBA)
		switch i {
		case 0:
			flatTile(sub)
		case 1:
			bevelTile(sub)
		case 2:
			insetTile(sub)
		default:
			checkerTile(sub)
		}
	}
	return img
}

func gray(v uint8) color.RGBA { return color.RGBA{R: v, G: v, B: v, A: 255} }

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Rect), image.NewUniform(c), image.Point{}, draw.Src)
}

func flatTile(img *image.RGBA) {
	fill(img, img.Rect, gray(230))
	fill(img, img.Rect.Inset(1), gray(255))
}

func bevelTile(img *image.RGBA) {
	b := img.Rect
	edge := max(b.Dx()/8, 1)
	fill(img, b, gray(150))
	fill(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X-edge, b.Max.Y-edge), gray(255))
	fill(img, b.Inset(edge), gray(210))
}

func insetTile(img *image.RGBA) {
	b := img.Rect
	fill(img, b, gray(255))
	fill(img, b.Inset(max(b.Dx()/4, 1)), gray(170))
	fill(img, b.Inset(max(b.Dx()/3, 1)), gray(235))
}

func checkerTile(img *image.RGBA) {
	b := img.Rect
	step := max(b.Dx()/4, 1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8(255)
			if ((x-b.Min.X)/step+(y-b.Min.Y)/step)%2 == 1 {
				v = 200
			}
			img.SetRGBA(x, y, gray(v))
		}
	}
}

// SheetLoader returns a loader that builds the generated atlas as an ebiten
// image regardless of the requested name.
func SheetLoader(tile int) Loader[*ebiten.Image] {
	return func(string) (*ebiten.Image, error) {
		if tile <= 0 {
			return nil, fmt.Errorf("invalid tile size %d", tile)
		}
		return ebiten.NewImageFromImage(Atlas(tile)), nil
	}
}

// DecodePNG reads and decodes the PNG file name from fsys.
func DecodePNG(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// LoadPNG decodes the PNG sheet name from fsys into an ebiten image.
func LoadPNG(fsys fs.FS, name string) (*ebiten.Image, error) {
	img, err := DecodePNG(fsys, name)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// PNGLoader loads PNG sheets stored in fsys under their cache name.
func PNGLoader(fsys fs.FS) Loader[*ebiten.Image] {
	return func(name string) (*ebiten.Image, error) {
		return LoadPNG(fsys, name)
	}
}

// NewImageCache returns a cache of ebiten images that disposes of released
// images. Names without a registered loader are read as PNGs from fsys when
// fsys is non-nil; SheetName always maps to the generated atlas.
func NewImageCache(fsys fs.FS, tile int, opts ...Option[*ebiten.Image]) *Cache[*ebiten.Image] {
	var fallback Loader[*ebiten.Image]
	if fsys != nil {
		fallback = PNGLoader(fsys)
	}
	opts = append([]Option[*ebiten.Image]{WithRelease(func(_ string, img *ebiten.Image) {
		img.Deallocate()
	})}, opts...)
	c := NewCache(fallback, opts...)
	c.Register(SheetName, SheetLoader(tile))
	return c
}
