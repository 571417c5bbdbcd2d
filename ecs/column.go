package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// column stores the components of one type, addressed by entity slot.
type column interface {
	Type() reflect.Type
	Set(slot uint32, value any) bool
	Get(slot uint32) any
	Pointer(slot uint32) unsafe.Pointer
	Has(slot uint32) bool
	Delete(slot uint32)
	Len() int
	Slots() iter.Seq[uint32]
}

const blockSize = 64

// blockColumn keeps components in fixed-size blocks so pointers handed out
// stay valid while the column grows.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
	filled []uint64
	count  int
}

func (c *blockColumn[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Set stores value, which may be a T or a *T, at slot.
func (c *blockColumn[T]) Set(slot uint32, value any) bool {
	var v T
	switch x := value.(type) {
	case T:
		v = x
	case *T:
		v = *x
	default:
		return false
	}

	block, bit := int(slot/blockSize), slot%blockSize
	for block >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
		c.filled = append(c.filled, 0)
	}
	if c.filled[block]&(1<<bit) == 0 {
		c.count++
	}
	c.blocks[block][bit] = v
	c.filled[block] |= 1 << bit
	return true
}

func (c *blockColumn[T]) Has(slot uint32) bool {
	block, bit := int(slot/blockSize), slot%blockSize
	return block < len(c.filled) && c.filled[block]&(1<<bit) != 0
}

// Get returns a *T, or nil when the slot is empty.
func (c *blockColumn[T]) Get(slot uint32) any {
	if !c.Has(slot) {
		return nil
	}
	return &c.blocks[slot/blockSize][slot%blockSize]
}

func (c *blockColumn[T]) Pointer(slot uint32) unsafe.Pointer {
	if !c.Has(slot) {
		return nil
	}
	return unsafe.Pointer(&c.blocks[slot/blockSize][slot%blockSize])
}

func (c *blockColumn[T]) Delete(slot uint32) {
	if !c.Has(slot) {
		return
	}
	block, bit := slot/blockSize, slot%blockSize
	var zero T
	c.blocks[block][bit] = zero
	c.filled[block] &^= 1 << bit
	c.count--
}

func (c *blockColumn[T]) Len() int {
	return c.count
}

// Slots yields occupied slots in ascending order.
func (c *blockColumn[T]) Slots() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for block, mask := range c.filled {
			if mask == 0 {
				continue
			}
			for bit := range uint32(blockSize) {
				if mask&(1<<bit) == 0 {
					continue
				}
				if !yield(uint32(block)*blockSize + bit) {
					return
				}
			}
		}
	}
}
