package ecs

// Commands buffers structural changes made while systems run. They are applied
// to the store when the frame ends, so systems never see entities appear or
// disappear mid-iteration.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	config EntityConfig
	done   func(EntityId)
}

// Defer queues a function to run after spawns and deletes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(cfg EntityConfig) {
	c.spawns = append(c.spawns, spawnCommand{config: cfg})
}

// SpawnThen queues an entity spawn and calls done with the new id once it exists.
func (c *Commands) SpawnThen(cfg EntityConfig, done func(EntityId)) {
	c.spawns = append(c.spawns, spawnCommand{config: cfg, done: done})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Pending returns the number of queued operations
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies all queued operations to the store and resets the buffer
func (c *Commands) Flush(store *Store) {
	for _, id := range c.deletes {
		store.Remove(id)
	}

	for _, cmd := range c.spawns {
		id := store.Add(cmd.config)
		if cmd.done != nil {
			cmd.done(id)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
