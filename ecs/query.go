package ecs

import "iter"

// Query wraps a View and snapshots its matches once per frame. Systems
// declare Query fields; the Scheduler initializes them on Register and
// executes them before the owning system runs, so entities spawned through
// Commands show up on the next frame.
type Query[T any] struct {
	view    *View[T]
	ids     []EntityId
	items   []T
	fresh   bool
	storage *Storage
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to a storage. Called by the Scheduler during system
// registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.ids = q.ids[:0]
	q.items = q.items[:0]
	q.fresh = false
}

// Execute rebuilds the snapshot for this frame.
func (q *Query[T]) Execute() {
	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for id, item := range q.view.Iter() {
		q.ids = append(q.ids, id)
		q.items = append(q.items, item)
	}
	q.fresh = true
}

// Iter yields the matches captured by the last Execute.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.fresh {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Entries yields ids alongside the matches captured by the last Execute.
func (q *Query[T]) Entries() iter.Seq2[EntityId, T] {
	if !q.fresh {
		panic("Query.Entries() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.items {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Len returns the number of matches captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.items)
}

// First returns the first match, if any.
func (q *Query[T]) First() (T, bool) {
	if !q.fresh || len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}
