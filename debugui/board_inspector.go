package debugui

import (
	"fmt"
	"image"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/netris/board"
)

func NewBoardInspectorWindow() BoardInspectorWindow {
	return BoardInspectorWindow{showField: true}
}

func (bi *BoardInspectorWindow) Render(b *board.Board) {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if b == nil {
		imgui.Text("No board")
		return
	}

	imgui.Text(fmt.Sprintf("State: %s", b.State()))
	imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", b.Score(), b.Lines(), b.Level()))
	imgui.Text(fmt.Sprintf("Fall interval: %s", b.FallInterval()))
	imgui.Text(fmt.Sprintf("Next: %s  Hold: %s", kindLabel(b.Next()), kindLabel(b.Hold())))
	if rows := b.ClearingRows(); len(rows) > 0 {
		imgui.Text(fmt.Sprintf("Clearing rows: %v", rows))
	}
	if err := b.CheckInvariants(); err != nil {
		imgui.Text(fmt.Sprintf("Invariant: %v", err))
	}

	imgui.Separator()
	info, ok := b.Falling()
	if !ok {
		imgui.Text("No falling piece")
	} else {
		imgui.Text(fmt.Sprintf("Falling: %s at %d°", info.Kind, info.Rotation))
		imgui.Text(fmt.Sprintf("Bounds: %v  Can hold: %t", info.Bounds, info.CanHold))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("FallingCells", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Cell")
			imgui.TableSetupColumn("X")
			imgui.TableSetupColumn("Y")
			imgui.TableSetupColumn("ID")
			imgui.TableHeadersRow()

			for _, c := range info.Cells {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.Number))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.Pos.X))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.Pos.Y))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.ID))
			}

			imgui.EndTable()
		}
	}

	imgui.Checkbox("Show field", &bi.showField)
	if bi.showField {
		for _, row := range fieldRows(b) {
			imgui.Text(row)
		}
	}
}

func kindLabel(k fmt.Stringer, ok bool) string {
	if !ok {
		return "-"
	}
	return k.String()
}

// fieldRows draws the play field one string per row: '@' for falling cells,
// '#' for locked cells, '=' for cells of a row being cleared and '.' for
// empty cells.
func fieldRows(b *board.Board) []string {
	field := b.Layout().Field
	falling := make(map[image.Point]bool)
	if info, ok := b.Falling(); ok {
		for _, c := range info.Cells {
			falling[c.Pos] = true
		}
	}
	clearing := make(map[int]bool)
	for _, y := range b.ClearingRows() {
		clearing[y] = true
	}

	rows := make([]string, 0, field.Dy())
	var sb strings.Builder
	for y := field.Min.Y; y < field.Max.Y; y++ {
		sb.Reset()
		for x := field.Min.X; x < field.Max.X; x++ {
			switch {
			case falling[image.Pt(x, y)]:
				sb.WriteByte('@')
			case !b.Occupied(x, y):
				sb.WriteByte('.')
			case clearing[y]:
				sb.WriteByte('=')
			default:
				sb.WriteByte('#')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}
