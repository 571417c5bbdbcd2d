package board

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error CheckInvariants returns.
var ErrInvariant = errors.New("board invariant violated")

// CheckInvariants verifies that the falling piece agrees with the grid, that
// its bounding box matches its cells and that the state payload fits the
// state. It is meant for tests and soak runs.
func (b *Board) CheckInvariants() error {
	if (b.clear != nil) != (b.state == Clearing) {
		return fmt.Errorf("%w: clearing payload present=%t in state %s", ErrInvariant, b.clear != nil, b.state)
	}
	if b.level != b.lines/b.tuning.LinesPerLevel+1 {
		return fmt.Errorf("%w: level %d after %d lines", ErrInvariant, b.level, b.lines)
	}

	f := b.falling
	if f == nil {
		return nil
	}
	if b.state == Clearing {
		return fmt.Errorf("%w: falling piece present while clearing", ErrInvariant)
	}
	cells := f.Cells()
	if len(cells) != len(f.Piece().CellOffsets()) {
		return fmt.Errorf("%w: falling piece has %d cells", ErrInvariant, len(cells))
	}

	minX, maxX := cells[0].Pos.X, cells[0].Pos.X
	minY, maxY := cells[0].Pos.Y, cells[0].Pos.Y
	for i, c := range cells {
		if c.Number != i {
			return fmt.Errorf("%w: cell numbers are not 0..%d", ErrInvariant, len(cells)-1)
		}
		if !c.Pos.In(b.layout.Field) {
			return fmt.Errorf("%w: cell %d at %v outside the field", ErrInvariant, c.Number, c.Pos)
		}
		if c.ID != b.grid.ID(c.Pos.X, c.Pos.Y) {
			return fmt.Errorf("%w: cell %d id %d does not match %v", ErrInvariant, c.Number, c.ID, c.Pos)
		}
		gc := b.grid.Cell(c.Pos.X, c.Pos.Y)
		if !gc.Occupied || gc.Color != c.Color || gc.Texture != c.Texture {
			return fmt.Errorf("%w: grid disagrees with cell %d at %v", ErrInvariant, c.Number, c.Pos)
		}
		minX, maxX = min(minX, c.Pos.X), max(maxX, c.Pos.X)
		minY, maxY = min(minY, c.Pos.Y), max(maxY, c.Pos.Y)
	}
	if f.MinX() != minX || f.MaxX() != maxX || f.MinY() != minY || f.MaxY() != maxY {
		return fmt.Errorf("%w: bounding box x[%d,%d] y[%d,%d], cells span x[%d,%d] y[%d,%d]",
			ErrInvariant, f.MinX(), f.MaxX(), f.MinY(), f.MaxY(), minX, maxX, minY, maxY)
	}
	return nil
}
