package debugui

import "github.com/plus3/netris/ecs"

// SpawnWindows adds one entity per inspector window to storage.
func SpawnWindows(storage *ecs.Storage) {
	storage.Spawn(NewEntityBrowserWindow(100))
	storage.Spawn(NewComponentInspectorWindow())
	storage.Spawn(NewPerformanceWindow(120))
	storage.Spawn(NewBoardInspectorWindow())
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserWindow](registry)
	ecs.RegisterComponent[ComponentInspectorWindow](registry)
	ecs.RegisterComponent[PerformanceWindow](registry)
	ecs.RegisterComponent[BoardInspectorWindow](registry)
}
