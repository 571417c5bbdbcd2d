package debugui

import (
	"github.com/plus3/netris/ecs"
)

type EntityBrowserWindow struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorWindow struct {
	selectedEntityId ecs.EntityId
}

type PerformanceWindow struct {
	timer         *FrameTimer
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type BoardInspectorWindow struct {
	showField bool
}
