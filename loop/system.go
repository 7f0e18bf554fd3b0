package loop

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// UpdateFrame is passed to every system once per frame.
type UpdateFrame struct {
	DeltaTime time.Duration
	Commands  *Commands
	Engine    *tetris.Engine
}

func newUpdateFrame(dt time.Duration, engine *tetris.Engine) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Engine:    engine,
	}
}

// System is a unit of per-frame work. Systems may keep their own state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// InputSource produces actions for the current state. Implementations are polled once per frame.
type InputSource interface {
	Poll(state tetris.Snapshot) []Action
}

// Renderer draws a snapshot.
type Renderer interface {
	Render(state tetris.Snapshot)
}

// InputSystem queues the actions of Source.
type InputSystem struct {
	Source InputSource
}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	frame.Commands.Push(s.Source.Poll(frame.Engine.Snapshot())...)
}

// GravitySystem feeds frame time into the engine's automatic drop.
type GravitySystem struct {
	Drops int
}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	if frame.Engine.Tick(frame.DeltaTime) {
		s.Drops++
	}
}

// RenderSystem hands a snapshot to Renderer at most once per Interval.
// The snapshot is taken after the frame's actions are applied.
// A zero Interval renders every frame.
type RenderSystem struct {
	Renderer Renderer
	Interval time.Duration

	elapsed time.Duration
	primed  bool
}

func (s *RenderSystem) Execute(frame *UpdateFrame) {
	s.elapsed += frame.DeltaTime
	if s.primed && s.elapsed < s.Interval {
		return
	}
	s.primed = true
	s.elapsed = 0
	frame.Commands.Defer(func() {
		s.Renderer.Render(frame.Engine.Snapshot())
	})
}
