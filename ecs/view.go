package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers. Every field of
// T must be a pointer to a registered component type, except for at most one
// field of type EntityId which receives the id of the entity being read.
// Named pointer fields tagged `ecs:"optional"` are nil when the component is
// missing; every other pointer field is required.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			if v.hasId {
				panic("View struct may hold only one EntityId field")
			}
			v.idOffset, v.hasId = field.Offset, true
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag on field " + field.Name + ": only named fields may be \"optional\"")
			}
			optional = true
		}
		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return v
}

// Fill populates the provided struct pointer with component data for the
// given entity. It returns false if the entity is dead or missing a required
// component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}
	return v.fill(unsafe.Pointer(ptr), id)
}

func (v *View[T]) fill(structPtr unsafe.Pointer, id EntityId) bool {
	slot := id.Index()
	for _, f := range v.fields {
		var comp unsafe.Pointer
		if col, ok := v.storage.columns[f.typ]; ok {
			comp = col.Pointer(slot)
		}
		if comp == nil && !f.optional {
			return false
		}
		*(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset)) = comp
	}
	if v.hasId {
		*(*EntityId)(unsafe.Add(structPtr, v.idOffset)) = id
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the
// entity doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// driver picks the smallest required column to walk. ok is false when a
// required column does not exist yet, meaning nothing can match.
func (v *View[T]) driver() (col column, ok bool) {
	for _, f := range v.fields {
		if f.optional {
			continue
		}
		c, exists := v.storage.columns[f.typ]
		if !exists {
			return nil, false
		}
		if col == nil || c.Len() < col.Len() {
			col = c
		}
	}
	return col, true
}

// Iter yields every entity that has the required components.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		col, ok := v.driver()
		if !ok {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)
		visit := func(id EntityId) bool {
			if !v.fill(resultPtr, id) {
				return true
			}
			return yield(id, result)
		}

		if col == nil {
			// Views of only optional fields match every entity.
			for id := range v.storage.Entities() {
				if !visit(id) {
					return
				}
			}
			return
		}
		for slot := range col.Slots() {
			id := newEntityId(slot, v.storage.generations[slot])
			if !visit(id) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity from the non-nil pointer fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		comp := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if comp == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, comp).Interface())
	}
	return v.storage.Spawn(components...)
}
