package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The Scheduler
// flushes the buffer after the last system of a frame.
type Commands struct {
	ops []command
}

type commandKind uint8

const (
	cmdSpawn commandKind = iota
	cmdDelete
	cmdAdd
	cmdRemove
	cmdDefer
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	compType   reflect.Type
	fn         func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, command{kind: cmdSpawn, components: components})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.ops = append(c.ops, command{kind: cmdDelete, entity: entity})
}

// AddComponent queues attaching a component.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, command{kind: cmdAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues detaching a component.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, command{kind: cmdRemove, entity: entity, compType: compType})
}

// Defer queues an arbitrary function, run after every structural change of
// the same flush.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, command{kind: cmdDefer, fn: fn})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Flush applies queued operations in the order they were queued, then runs
// deferred functions in the order they were deferred, and resets the buffer.
// Operations on an entity deleted earlier in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	var deferred []func()
	for _, op := range c.ops {
		switch op.kind {
		case cmdSpawn:
			storage.Spawn(op.components...)
		case cmdDelete:
			storage.Delete(op.entity)
		case cmdAdd:
			storage.AddComponent(op.entity, op.components[0])
		case cmdRemove:
			storage.RemoveComponent(op.entity, op.compType)
		case cmdDefer:
			deferred = append(deferred, op.fn)
		}
	}
	clear(c.ops)
	c.ops = c.ops[:0]

	for _, fn := range deferred {
		fn()
	}
}
