package ecs

import "iter"

// Query is a View that remembers which archetypes match. The cache is rebuilt
// whenever the storage gains an archetype.
type Query[T any] struct {
	view    *View[T]
	seen    int
	matched []*Archetype
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it for Query fields of
// registered systems.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.seen = -1
	q.matched = nil
}

func (q *Query[T]) refresh() {
	archetypes := q.view.storage.archetypes
	if len(archetypes) == q.seen {
		return
	}

	// Archetypes are only ever appended, so only the new tail needs checking.
	for _, archetype := range archetypes[max(q.seen, 0):] {
		if q.view.matches(archetype) {
			q.matched = append(q.matched, archetype)
		}
	}
	q.seen = len(archetypes)
}

func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if q.view == nil {
		panic("ecs: Query used before Init")
	}
	q.refresh()

	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.matched {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count is the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}

// Get returns the populated struct for id, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}
