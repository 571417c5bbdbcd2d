package ecs

import (
	"reflect"
	"slices"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	TotalEntityCount int
	FreeSlotCount    int
	ComponentCount   int
	SingletonCount   int
	Components       []ComponentStats
	SingletonTypes   []string
}

// ComponentStats counts the live components of one type.
type ComponentStats struct {
	Type  string
	Count int
}

// CollectStats gathers entity, component and singleton counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.live,
		FreeSlotCount:    len(s.free),
		SingletonCount:   len(s.singletons),
	}

	types := make([]reflect.Type, 0, len(s.columns))
	for t := range s.columns {
		types = append(types, t)
	}
	slices.SortFunc(types, byTypeName)
	for _, t := range types {
		n := s.columns[t].Len()
		stats.ComponentCount += n
		stats.Components = append(stats.Components, ComponentStats{Type: t.String(), Count: n})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	return stats
}
