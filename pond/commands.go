package pond

import (
	"errors"
	"fmt"
)

// Commands buffers structural changes to a Scene so they are applied between
// ticks, never while ducks are being updated.
type Commands struct {
	spawns    []*Duck
	removes   []DuckId
	behaviors []behaviorCommand
	defers    []func()
}

type behaviorCommand struct {
	id       DuckId
	behavior Behavior
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues adding an autonomous duck built with Scene.NewDuck.
func (c *Commands) Spawn(d *Duck) {
	c.spawns = append(c.spawns, d)
}

// Remove queues removing an autonomous duck.
func (c *Commands) Remove(id DuckId) {
	c.removes = append(c.removes, id)
}

// SetBehavior queues a behavior swap for any duck, the player included.
func (c *Commands) SetBehavior(id DuckId, b Behavior) {
	if b == nil {
		panic("pond: duck requires a behavior")
	}
	c.behaviors = append(c.behaviors, behaviorCommand{id: id, behavior: b})
}

// Defer queues a function to run after the other commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports the number of queued commands.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.removes) + len(c.behaviors) + len(c.defers)
}

// Flush applies all commands to the scene and resets the buffer: removals,
// then behavior swaps on surviving ducks, then spawns, then deferred functions.
// Commands that cannot be applied are skipped and their errors joined: unknown
// ids give ErrDuckNotFound and colliding spawns ErrDuplicateDuck.
func (c *Commands) Flush(s *Scene) error {
	if c.Pending() == 0 {
		return nil
	}

	var errs []error
	removed := make(map[DuckId]bool, len(c.removes))
	for _, id := range c.removes {
		if !s.Remove(id) {
			errs = append(errs, fmt.Errorf("remove: %w: %d", ErrDuckNotFound, id))
			continue
		}
		removed[id] = true
	}

	for _, cmd := range c.behaviors {
		if removed[cmd.id] {
			continue
		}
		if err := s.SetBehavior(cmd.id, cmd.behavior); err != nil {
			errs = append(errs, fmt.Errorf("set behavior: %w", err))
		}
	}

	for _, d := range c.spawns {
		if err := s.Add(d); err != nil {
			errs = append(errs, fmt.Errorf("spawn: %w", err))
		}
	}

	defers := c.defers
	c.spawns = c.spawns[:0]
	c.removes = c.removes[:0]
	c.behaviors = c.behaviors[:0]
	c.defers = nil

	for _, fn := range defers {
		fn()
	}
	return errors.Join(errs...)
}
