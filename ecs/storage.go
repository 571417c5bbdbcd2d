package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

// Storage owns every entity, component column and singleton of one world.
type Storage struct {
	registry    *ComponentRegistry
	columns     map[reflect.Type]column
	generations []uint32
	alive       []bool
	free        []uint32
	live        int
	singletons  map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value // pointer to the stored value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		columns:    make(map[reflect.Type]column),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		slot = uint32(len(s.alive))
		s.alive = append(s.alive, false)
		s.generations = append(s.generations, 0)
	}
	s.alive[slot] = true
	s.live++

	id := newEntityId(slot, s.generations[slot])
	for _, comp := range components {
		s.setComponent(slot, comp)
	}
	return id
}

// Delete removes the entity and all of its components. It reports whether the
// entity was alive.
func (s *Storage) Delete(id EntityId) bool {
	if !s.Alive(id) {
		return false
	}
	slot := id.Index()
	for _, col := range s.columns {
		col.Delete(slot)
	}
	s.alive[slot] = false
	s.generations[slot]++
	s.free = append(s.free, slot)
	s.live--
	return true
}

// Alive reports whether id refers to an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	slot := int(id.Index())
	return slot < len(s.alive) && s.alive[slot] && s.generations[slot] == id.Generation()
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.live
}

// Entities yields every live entity in slot order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot, ok := range s.alive {
			if ok && !yield(newEntityId(uint32(slot), s.generations[slot])) {
				return
			}
		}
	}
}

// AddComponent attaches or replaces a component. It reports false when the
// entity is not alive.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	if !s.Alive(id) {
		return false
	}
	s.setComponent(id.Index(), component)
	return true
}

// RemoveComponent detaches a component. An entity left without components is
// deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	col, ok := s.columns[compType]
	if !ok || !col.Has(id.Index()) {
		return false
	}
	col.Delete(id.Index())
	if len(s.ComponentTypes(id)) == 0 {
		s.Delete(id)
	}
	return true
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	col, ok := s.columns[compType]
	if !ok {
		return nil
	}
	return col.Get(id.Index())
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	col, ok := s.columns[compType]
	return ok && col.Has(id.Index())
}

// ComponentTypes lists the component types attached to id, sorted by name.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}
	var types []reflect.Type
	for t, col := range s.columns {
		if col.Has(id.Index()) {
			types = append(types, t)
		}
	}
	slices.SortFunc(types, byTypeName)
	return types
}

func (s *Storage) setComponent(slot uint32, comp any) {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	col := s.column(t)
	if !col.Set(slot, comp) {
		panic("ecs: component " + t.String() + " rejected by its column")
	}
}

// column returns the column for t, creating it on first use.
func (s *Storage) column(t reflect.Type) column {
	if col, ok := s.columns[t]; ok {
		return col
	}
	factory, ok := s.registry.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	col := factory()
	s.columns[t] = col
	return col
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. value may be a T or a *T.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("ecs: nil singleton")
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Elem().Set(v)
		return
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{value: ptr, dataPtr: ptr.UnsafePointer()}
}

// ReadSingleton returns a pointer to the singleton of type t, or nil.
func (s *Storage) ReadSingleton(t reflect.Type) any {
	entry := s.getSingletonEntry(t)
	if entry == nil {
		return nil
	}
	return entry.value.Interface()
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) bool {
	if _, ok := s.singletons[t]; !ok {
		return false
	}
	delete(s.singletons, t)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func byTypeName(a, b reflect.Type) int {
	return cmp.Compare(a.String(), b.String())
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	c, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return c
}

// ReadSingleton returns the storage's T singleton, or nil.
func ReadSingleton[T any](s *Storage) *T {
	c, _ := s.ReadSingleton(reflect.TypeFor[T]()).(*T)
	return c
}
