package ebitenui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

type heldKey struct {
	key    ebiten.Key
	action loop.Action
	repeat *ui.Repeater
}

type tapKey struct {
	key    ebiten.Key
	action loop.Action
}

var taps = []tapKey{
	{ebiten.KeyUp, loop.ActionRotateCW},
	{ebiten.KeyX, loop.ActionRotateCW},
	{ebiten.KeyZ, loop.ActionRotateCCW},
	{ebiten.KeySpace, loop.ActionHardDrop},
	{ebiten.KeyP, loop.ActionTogglePause},
	{ebiten.KeyR, loop.ActionReset},
}

// Keyboard is a loop.InputSource reading the ebiten keyboard. Left, right
// and down auto-repeat while held.
type Keyboard struct {
	// Step is the time one poll stands for. Zero means one ebiten tick.
	Step time.Duration
	// Captured, when set and true, suppresses input, e.g. while a debug window has focus.
	Captured func() bool

	held []heldKey
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		held: []heldKey{
			{ebiten.KeyLeft, loop.ActionMoveLeft, ui.NewRepeater()},
			{ebiten.KeyRight, loop.ActionMoveRight, ui.NewRepeater()},
			{ebiten.KeyDown, loop.ActionSoftDrop, &ui.Repeater{Delay: ui.SoftDropRepeat, Rate: ui.SoftDropRepeat}},
		},
	}
}

func (k *Keyboard) step() time.Duration {
	if k.Step > 0 {
		return k.Step
	}
	return time.Second / time.Duration(ebiten.TPS())
}

// Poll returns the actions triggered since the previous poll.
func (k *Keyboard) Poll(tetris.Snapshot) []loop.Action {
	if k.Captured != nil && k.Captured() {
		for _, h := range k.held {
			h.repeat.Reset()
		}
		return nil
	}

	var actions []loop.Action
	dt := k.step()
	for _, h := range k.held {
		n := h.repeat.Update(inpututil.IsKeyJustPressed(h.key), ebiten.IsKeyPressed(h.key), dt)
		for range n {
			actions = append(actions, h.action)
		}
	}
	for _, t := range taps {
		if inpututil.IsKeyJustPressed(t.key) {
			actions = append(actions, t.action)
		}
	}
	return actions
}
