package debugui

import (
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/ecs"
	"github.com/plus3/netris/game"
)

// WindowSystem renders the inspector windows spawned by SpawnWindows while the
// session's debug overlay is visible.
type WindowSystem struct {
	// Scheduler feeds the performance window. It may be nil.
	Scheduler *ecs.Scheduler

	Debug      ecs.Singleton[game.DebugState]
	Board      ecs.Singleton[game.BoardHandle]
	Browsers   ecs.Query[struct{ *EntityBrowserWindow }]
	Inspectors ecs.Query[struct{ *ComponentInspectorWindow }]
	Perf       ecs.Query[struct{ *PerformanceWindow }]
	Boards     ecs.Query[struct{ *BoardInspectorWindow }]
}

func (w *WindowSystem) Execute(frame *ecs.UpdateFrame) {
	if debug := w.Debug.Get(); debug == nil || !debug.Visible {
		return
	}

	storage := frame.Storage
	var b *board.Board
	if h := w.Board.Get(); h != nil {
		b = h.Board
	}

	frame.Commands.Defer(func() {
		var (
			selected ecs.EntityId
			ok       bool
		)
		for browser := range w.Browsers.Iter() {
			browser.Render(storage)
			if id, picked := browser.SelectedEntity(); picked {
				selected, ok = id, true
			}
		}
		for inspector := range w.Inspectors.Iter() {
			inspector.Render(storage, selected, ok)
		}
		for perf := range w.Perf.Iter() {
			perf.Render(storage, w.Scheduler)
		}
		for bi := range w.Boards.Iter() {
			bi.Render(b)
		}
	})
}
