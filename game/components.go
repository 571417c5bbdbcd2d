package game

import (
	"github.com/plus3/netris/board"
	"github.com/plus3/netris/ecs"
)

// BoardHandle is the singleton holding the session's board.
type BoardHandle struct {
	Board *board.Board
}

// Controls is the singleton input snapshot for the current frame.
type Controls struct {
	Keys board.KeyState
}

// MusicCue is spawned as its own entity when the board changes state and is
// consumed by MusicSystem on the following frame.
type MusicCue struct {
	From  board.State
	To    board.State
	Frame uint64
}

// Quit is the singleton set once the player asks to leave.
type Quit struct {
	Requested bool
}

// DebugState is the singleton toggled by the debug key.
type DebugState struct {
	Visible bool
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[BoardHandle](registry)
	ecs.RegisterComponent[Controls](registry)
	ecs.RegisterComponent[MusicCue](registry)
	ecs.RegisterComponent[Quit](registry)
	ecs.RegisterComponent[DebugState](registry)
}
