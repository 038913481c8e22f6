package ecs

// Commands buffers structural changes made while systems run. The Scheduler
// flushes it after the last system of a frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

// Spawn queues an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after all spawns and deletes have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending is the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred functions, and empties
// the buffer. Deferred functions may queue more commands; those run on the
// next flush.
func (c *Commands) Flush(storage *Storage) {
	deletes, spawns, defers := c.deletes, c.spawns, c.defers
	c.deletes, c.spawns, c.defers = nil, nil, nil

	for _, id := range deletes {
		storage.Delete(id)
	}
	for _, components := range spawns {
		storage.Spawn(components...)
	}
	for _, fn := range defers {
		fn()
	}
}
