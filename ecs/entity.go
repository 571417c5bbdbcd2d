package ecs

import "fmt"

// EntityId packs a slot index (lower 32 bits) with the generation of that slot
// (upper 32 bits). Reusing a slot bumps its generation, so ids of deleted
// entities never alias live ones.
type EntityId uint64

func newEntityId(index, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}
