// Package autoplay is a computer player. It picks a placement for each new
// piece with a weighted board heuristic and steers the piece there one action
// per poll.
package autoplay

import (
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// maxSteps bounds the actions spent steering one piece before it is hard dropped.
const maxSteps = 4 + 2*tetris.Cols

// Player implements loop.InputSource.
type Player struct {
	Weights Weights
	// Every makes the player act on one poll out of Every. Zero or one acts on every poll.
	Every int

	spawned int
	target  Placement
	planned bool
	steps   int
	polls   int
	last    loop.Action
	lastX   int
}

// New returns a player using DefaultWeights.
func New() *Player {
	return &Player{Weights: DefaultWeights}
}

// Target returns the placement chosen for the current piece.
func (p *Player) Target() (Placement, bool) {
	return p.target, p.planned
}

// Poll returns at most one action steering the active piece towards its
// planned placement.
func (p *Player) Poll(state tetris.Snapshot) []loop.Action {
	if state.GameOver {
		p.planned = false
		return nil
	}
	if state.Paused {
		return nil
	}

	if !p.planned || state.Spawned != p.spawned {
		p.plan(state)
	}

	p.polls++
	if p.Every > 1 && p.polls%p.Every != 0 {
		return nil
	}

	a := p.next(state)
	p.last = a
	p.lastX = state.Active.X
	p.steps++
	return []loop.Action{a}
}

func (p *Player) plan(state tetris.Snapshot) {
	p.spawned = state.Spawned
	p.steps = 0
	p.last = loop.ActionNone
	p.target, p.planned = Best(state.Board, state.Active, p.Weights)
}

func (p *Player) next(state tetris.Snapshot) loop.Action {
	if !p.planned || p.steps >= maxSteps {
		return loop.ActionHardDrop
	}

	active := state.Active
	if !active.Shape.Equal(p.target.Shape) {
		return loop.ActionRotateCW
	}

	// a shift that did not move the piece means the path is blocked
	stuck := (p.last == loop.ActionMoveLeft || p.last == loop.ActionMoveRight) && active.X == p.lastX

	switch {
	case stuck:
		return loop.ActionHardDrop
	case active.X < p.target.X:
		return loop.ActionMoveRight
	case active.X > p.target.X:
		return loop.ActionMoveLeft
	}
	return loop.ActionHardDrop
}
