package loop

import "github.com/plus3/blockfall/tetris"

// Commands buffers actions and deferred functions produced while systems run.
// They are applied in order once every system of the frame has executed.
type Commands struct {
	actions []Action
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues an action.
func (c *Commands) Push(actions ...Action) {
	for _, a := range actions {
		if a != ActionNone {
			c.actions = append(c.actions, a)
		}
	}
}

// Defer queues a function to run after the queued actions.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued actions.
func (c *Commands) Len() int {
	return len(c.actions)
}

// Flush applies the queued actions to the engine, runs the deferred functions
// and resets the buffer. It returns how many actions the engine accepted.
func (c *Commands) Flush(e *tetris.Engine) int {
	accepted := 0
	for _, a := range c.actions {
		if Apply(e, a) {
			accepted++
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.actions = c.actions[:0]
	c.defers = c.defers[:0]
	return accepted
}
