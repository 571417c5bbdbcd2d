package piece_test

import (
	"image"
	"testing"

	"github.com/plus3/netris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleNext(t *testing.T) {
	assert.Equal(t, piece.Angle90, piece.Angle0.Next())
	assert.Equal(t, piece.Angle180, piece.Angle90.Next())
	assert.Equal(t, piece.Angle270, piece.Angle180.Next())
	assert.Equal(t, piece.Angle0, piece.Angle270.Next())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Bar", piece.Bar.String())
	assert.Equal(t, "RightStair", piece.RightStair.String())
	assert.Equal(t, "Unknown", piece.Kind(42).String())
	assert.False(t, piece.Kind(7).Valid())
}

func TestNewPanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() { piece.New(piece.Kind(9)) })
}

func TestSquareNeverMoves(t *testing.T) {
	sq := piece.New(piece.Square)
	for _, a := range []piece.Angle{piece.Angle0, piece.Angle90, piece.Angle180, piece.Angle270} {
		assert.Equal(t, piece.Offsets{}, sq.RotatedOffsets(a), "angle %d", a)
	}
}

func TestInvalidAngleReturnsBaseLayout(t *testing.T) {
	bar := piece.New(piece.Bar)
	assert.Equal(t, bar.CellOffsets(), bar.RotatedOffsets(piece.Angle(45)))
	assert.Equal(t, bar.CellOffsets(), bar.RotatedOffsets(piece.Angle(360)))
}

// Four quarter turns must bring every cell home, and every intermediate
// orientation must keep four distinct cells.
func TestRotationTablesAreClosed(t *testing.T) {
	for _, kind := range piece.All() {
		t.Run(kind.String(), func(t *testing.T) {
			p := piece.New(kind)
			cells := p.CellOffsets()
			angle := piece.Angle0
			for turn := 0; turn < 4; turn++ {
				angle = angle.Next()
				delta := p.RotatedOffsets(angle)
				for i := range cells {
					cells[i] = cells[i].Add(delta[i])
				}

				seen := make(map[image.Point]bool)
				for _, c := range cells {
					seen[c] = true
				}
				require.Len(t, seen, 4, "orientation %d overlaps itself", angle)
			}
			assert.Equal(t, p.CellOffsets(), cells)
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	for _, kind := range piece.All() {
		a := piece.New(kind)
		b := a.Clone()

		assert.Equal(t, a, b)
		assert.NotSame(t, a, b)
		assert.Equal(t, kind, b.Kind())
	}
}

func TestColorsAreOpaqueAndDistinct(t *testing.T) {
	seen := make(map[[3]uint8]piece.Kind)
	for _, kind := range piece.All() {
		c := piece.New(kind).Color()
		assert.Equal(t, uint8(255), c.A)

		key := [3]uint8{c.R, c.G, c.B}
		prev, dup := seen[key]
		assert.False(t, dup, "%s shares its color with %s", kind, prev)
		seen[key] = kind
	}
}
