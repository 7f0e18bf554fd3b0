package loop

import "github.com/plus3/blockfall/tetris"

// Action is a player intent applied to the engine.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionRotateCW
	ActionRotateCCW
	ActionHardDrop
	ActionTogglePause
	ActionReset
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionMoveLeft:    "move_left",
	ActionMoveRight:   "move_right",
	ActionSoftDrop:    "soft_drop",
	ActionRotateCW:    "rotate_cw",
	ActionRotateCCW:   "rotate_ccw",
	ActionHardDrop:    "hard_drop",
	ActionTogglePause: "toggle_pause",
	ActionReset:       "reset",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Apply performs a on the engine and reports whether the engine accepted it.
// Pause and reset are always accepted; everything else only while the game is
// running and not paused.
func Apply(e *tetris.Engine, a Action) bool {
	switch a {
	case ActionTogglePause:
		e.TogglePause()
		return true
	case ActionReset:
		e.Reset()
		return true
	}

	if e.GameOver() || e.Paused() {
		return false
	}

	switch a {
	case ActionMoveLeft:
		return e.MoveLeft()
	case ActionMoveRight:
		return e.MoveRight()
	case ActionSoftDrop:
		e.SoftDrop()
		return true
	case ActionRotateCW:
		return e.Rotate(1)
	case ActionRotateCCW:
		return e.Rotate(-1)
	case ActionHardDrop:
		return e.HardDrop() >= 0
	}
	return false
}
