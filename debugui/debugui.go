// Package debugui draws Dear ImGui debug windows over a running game.
// Windows are rendered by a loop.System so they see the same frame the
// other systems do.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/loop"
)

// Window renders one ImGui window for the current frame.
type Window interface {
	Render(frame *loop.UpdateFrame)
}

// InputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System defers the render of every window until the frame's actions are
// applied, and records ImGui's input capture state.
type System struct {
	Windows []Window
	Input   InputState
}

// Execute updates input state and queues all window renders for execution.
func (s *System) Execute(frame *loop.UpdateFrame) {
	io := imgui.CurrentIO()
	s.Input.WantCaptureMouse = io.WantCaptureMouse()
	s.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, w := range s.Windows {
		frame.Commands.Defer(func() { w.Render(frame) })
	}
}

// CapturesKeyboard reports whether an ImGui widget had keyboard focus last frame.
func (s *System) CapturesKeyboard() bool {
	return s.Input.WantCaptureKeyboard
}
