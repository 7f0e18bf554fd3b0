package termui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/loop"
)

// KeyAction maps a key to an action. Terminals repeat held keys themselves,
// so every key event is one action.
func KeyAction(key tcell.Key, r rune) loop.Action {
	switch key {
	case tcell.KeyLeft:
		return loop.ActionMoveLeft
	case tcell.KeyRight:
		return loop.ActionMoveRight
	case tcell.KeyDown:
		return loop.ActionSoftDrop
	case tcell.KeyUp:
		return loop.ActionRotateCW
	case tcell.KeyRune:
		switch r {
		case 'x', 'X':
			return loop.ActionRotateCW
		case 'z', 'Z':
			return loop.ActionRotateCCW
		case ' ':
			return loop.ActionHardDrop
		case 'p', 'P':
			return loop.ActionTogglePause
		case 'r', 'R':
			return loop.ActionReset
		}
	}
	return loop.ActionNone
}

// IsQuit reports whether the key ends the program.
func IsQuit(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

// Enqueuer accepts actions from outside the frame loop. *loop.Scheduler implements it.
type Enqueuer interface {
	Enqueue(actions ...loop.Action)
}

// Pump reads screen events until the screen is finalized or a quit key is
// pressed, forwarding actions to sink. It calls quit once on a quit key or
// when ctx ends.
func Pump(ctx context.Context, screen tcell.Screen, sink Enqueuer, quit func()) {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			quit()
			return
		case ev, ok := <-events:
			if !ok {
				quit()
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if IsQuit(ev.Key(), ev.Rune()) {
					quit()
					return
				}
				if a := KeyAction(ev.Key(), ev.Rune()); a != loop.ActionNone {
					sink.Enqueue(a)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}
