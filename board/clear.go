package board

import "image"

// clearJob is the payload of the Clearing state.
type clearJob struct {
	cells []fadingCell
	rows  []int
}

// fadingCell counts the fade steps left before the cell turns white.
type fadingCell struct {
	pos       image.Point
	remaining int
}

func (b *Board) queueFullRows() {
	field := b.layout.Field
	job := &clearJob{}
	for y := field.Min.Y; y < field.Max.Y; y++ {
		full := true
		for x := field.Min.X; x < field.Max.X; x++ {
			if !b.grid.Occupied(x, y) {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		for x := field.Min.X; x < field.Max.X; x++ {
			job.cells = append(job.cells, fadingCell{
				pos:       image.Pt(x, y),
				remaining: b.fadeSteps(x, y),
			})
		}
		job.rows = append(job.rows, y)
	}
	if len(job.rows) > 0 {
		b.clear = job
		b.state = Clearing
	}
}

// fadeSteps is how many FadeStep increments take the cell's darkest channel
// to 255.
func (b *Board) fadeSteps(x, y int) int {
	c := b.grid.Cell(x, y).Color
	gap := 255 - int(min(c.R, c.G, c.B))
	step := int(b.tuning.FadeStep)
	return (gap + step - 1) / step
}

// stepClear fades every queued cell by one step. Cells that already reached
// white are emptied. Once no cell needed fading this tick the queued rows
// collapse and play resumes.
func (b *Board) stepClear() {
	job := b.clear
	done := true
	for i := range job.cells {
		fc := &job.cells[i]
		if fc.remaining == 0 {
			if b.grid.Occupied(fc.pos.X, fc.pos.Y) {
				b.grid.Clear(fc.pos.X, fc.pos.Y)
			}
			continue
		}
		c := b.grid.Cell(fc.pos.X, fc.pos.Y).Color
		c.R = fadeChannel(c.R, b.tuning.FadeStep)
		c.G = fadeChannel(c.G, b.tuning.FadeStep)
		c.B = fadeChannel(c.B, b.tuning.FadeStep)
		b.grid.SetColor(fc.pos.X, fc.pos.Y, c)
		fc.remaining--
		done = false
	}
	if !done {
		return
	}

	for _, row := range job.rows {
		b.collapse(row)
	}
	n := len(job.rows)
	b.lines += n
	b.score += b.tuning.PointsPerLine * n
	b.level = b.lines/b.tuning.LinesPerLevel + 1
	b.updateSkin()
	b.clear = nil
	b.state = Playing
}

func fadeChannel(v, step uint8) uint8 {
	if int(v)+int(step) > 255 {
		return 255
	}
	return v + step
}

// collapse shifts every field row above row down by one. Rows must be
// collapsed in ascending order so a multi-row clear does not double-shift.
func (b *Board) collapse(row int) {
	field := b.layout.Field
	for y := row; y > field.Min.Y; y-- {
		for x := field.Min.X; x < field.Max.X; x++ {
			above := b.grid.Cell(x, y-1)
			if above.Occupied {
				b.grid.Set(x, y, above.Color, above.Texture)
			} else {
				b.grid.Clear(x, y)
			}
		}
	}
	for x := field.Min.X; x < field.Max.X; x++ {
		b.grid.Clear(x, field.Min.Y)
	}
}

// updateSkin advances the texture of every locked cell and both previews
// when the level crosses a LevelsPerSkin boundary.
func (b *Board) updateSkin() {
	if len(b.tuning.Skins) == 0 {
		return
	}
	skin := ((b.level - 1) / b.tuning.LevelsPerSkin) % len(b.tuning.Skins)
	if skin == b.skin {
		return
	}
	b.skin = skin
	tex := b.skinTexture()
	for _, r := range []image.Rectangle{
		b.layout.Field,
		frameInterior(b.layout.HoldFrame),
		frameInterior(b.layout.NextFrame),
	} {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if b.grid.Occupied(x, y) {
					b.grid.SetTexture(x, y, tex)
				}
			}
		}
	}
}
