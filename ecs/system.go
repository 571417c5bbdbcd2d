package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are usually pointers to structs whose Query and Singleton fields the
// Scheduler binds on Register; other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
