// Package tetris implements the falling-block game state: pieces, collision,
// rotation with a horizontal kick search, line sweeping and scoring.
//
// An Engine is owned by a single driver. It is not safe for concurrent use;
// renderers read value copies through Snapshot.
package tetris

import (
	"math/rand/v2"
	"time"
)

// Randomizer picks spawn types. *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	IntN(n int) int
}

// Engine holds the board, the active and next pieces and the scoring counters.
type Engine struct {
	board   Board
	initial Board

	active  Piece
	next    Piece
	hasNext bool
	spawned int

	score        int
	lines        int
	level        int
	dropInterval time.Duration
	dropCounter  time.Duration

	gameOver bool
	paused   bool

	startPaused bool
	rng         Randomizer
	listeners   []Listener
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the randomizer used to choose spawned pieces.
func WithRand(r Randomizer) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed makes the piece sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithListener registers fn for engine events. It may be given more than once.
func WithListener(fn Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, fn) }
}

// WithBoard sets the board contents restored by every Reset.
func WithBoard(b Board) Option {
	return func(e *Engine) { e.initial = b }
}

// WithStartPaused makes Reset leave the engine paused until TogglePause.
func WithStartPaused(paused bool) Option {
	return func(e *Engine) { e.startPaused = paused }
}

// New creates an engine and resets it into a playable state.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.Reset()
	return e
}

// AddListener registers fn for engine events.
func (e *Engine) AddListener(fn Listener) {
	e.listeners = append(e.listeners, fn)
}

// Reset restores the starting board and counters and spawns a new active piece.
// The pending next piece, if any, carries over.
func (e *Engine) Reset() {
	e.board = e.initial
	e.score = 0
	e.lines = 0
	e.level = 1
	e.dropInterval = DropIntervalFor(1)
	e.dropCounter = 0
	e.gameOver = false
	e.paused = e.startPaused
	e.spawned = 0

	e.emit(Event{Kind: EventReset})
	e.spawn()
	if e.gameOver {
		e.emit(Event{Kind: EventGameOver, Piece: e.active.Type})
	}
}

func (e *Engine) randomPiece() Piece {
	return NewPiece(PieceTypes[e.rng.IntN(len(PieceTypes))])
}

func (e *Engine) spawn() {
	if !e.hasNext {
		e.next = e.randomPiece()
		e.hasNext = true
	}
	e.active = e.next
	e.next = e.randomPiece()

	e.active.X = Cols/2 - e.active.Shape.Width()/2
	e.active.Y = 0
	e.spawned++
	e.emit(Event{Kind: EventSpawned, Piece: e.active.Type})

	// the game-over event is emitted by the caller once scoring has settled
	e.gameOver = e.board.Collides(e.active.Shape, e.active.X, e.active.Y)
}

func (e *Engine) playable() bool {
	return !e.gameOver && !e.paused
}

// Tick advances the drop counter by elapsed and performs one soft drop when
// the counter exceeds the drop interval. It reports whether a drop happened.
func (e *Engine) Tick(elapsed time.Duration) bool {
	if !e.playable() {
		return false
	}
	e.dropCounter += elapsed
	if e.dropCounter > e.dropInterval {
		e.SoftDrop()
		return true
	}
	return false
}

// Move shifts the active piece dir columns. The move is applied only if the
// destination is free.
func (e *Engine) Move(dir int) bool {
	if !e.playable() {
		return false
	}
	if e.board.Collides(e.active.Shape, e.active.X+dir, e.active.Y) {
		return false
	}
	e.active.X += dir
	return true
}

func (e *Engine) MoveLeft() bool  { return e.Move(-1) }
func (e *Engine) MoveRight() bool { return e.Move(1) }

// Rotate turns the active piece clockwise (dir = 1) or counter-clockwise (dir = -1).
// When the new orientation collides, horizontal offsets +1, -2, +3, ... are applied
// cumulatively until one fits or the next offset exceeds the shape width, in which
// case nothing changes. Any other dir panics.
func (e *Engine) Rotate(dir int) bool {
	if dir != 1 && dir != -1 {
		panic("tetris: rotation direction must be 1 or -1")
	}
	if !e.playable() {
		return false
	}

	rotated := Rotate(e.active.Shape, dir)
	width := rotated.Width()
	x := e.active.X
	offset := 1
	for e.board.Collides(rotated, x, e.active.Y) {
		x += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
		if offset > width {
			return false
		}
	}

	e.active.Shape = rotated
	e.active.X = x
	e.emit(Event{Kind: EventRotated, Piece: e.active.Type, Score: e.score, Level: e.level, TotalLines: e.lines})
	return true
}

// SoftDrop moves the active piece one row down, locking it when it cannot move.
// It reports whether the piece moved. The drop counter is reset either way.
func (e *Engine) SoftDrop() bool {
	if !e.playable() {
		return false
	}
	defer func() { e.dropCounter = 0 }()

	if !e.board.Collides(e.active.Shape, e.active.X, e.active.Y+1) {
		e.active.Y++
		return true
	}
	e.lock()
	return false
}

// HardDrop drops the active piece as far as it goes and locks it. It returns
// the number of rows travelled, or -1 when the engine is paused or over.
func (e *Engine) HardDrop() int {
	if !e.playable() {
		return -1
	}
	rows := 0
	for !e.board.Collides(e.active.Shape, e.active.X, e.active.Y+1) {
		e.active.Y++
		rows++
	}
	e.lock()
	return rows
}

func (e *Engine) lock() {
	locked := e.active.Type
	e.board.Merge(e.active)
	e.emit(Event{Kind: EventLocked, Piece: locked, Score: e.score, Level: e.level, TotalLines: e.lines})

	e.spawn()

	if n := e.board.Sweep(); n > 0 {
		prevLevel := e.level
		e.score += LineScore(n, e.level)
		e.lines += n
		e.level = LevelFor(e.lines)
		e.dropInterval = DropIntervalFor(e.level)

		e.emit(Event{Kind: EventLinesCleared, Piece: locked, Lines: n, Score: e.score, Level: e.level, TotalLines: e.lines})
		if e.level > prevLevel {
			e.emit(Event{Kind: EventLevelUp, Score: e.score, Level: e.level, TotalLines: e.lines})
		}
	}

	if e.gameOver {
		e.emit(Event{Kind: EventGameOver, Piece: e.active.Type})
	}
}

// TogglePause flips the paused flag and returns the new value. It is accepted in every state.
func (e *Engine) TogglePause() bool {
	e.paused = !e.paused
	kind := EventResumed
	if e.paused {
		kind = EventPaused
	}
	e.emit(Event{Kind: kind, Score: e.score, Level: e.level, TotalLines: e.lines})
	return e.paused
}

func (e *Engine) emit(ev Event) {
	if ev.Kind == EventGameOver {
		ev.Score, ev.Level, ev.TotalLines = e.score, e.level, e.lines
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}

func (e *Engine) Score() int                  { return e.score }
func (e *Engine) Lines() int                  { return e.lines }
func (e *Engine) Level() int                  { return e.level }
func (e *Engine) DropInterval() time.Duration { return e.dropInterval }
func (e *Engine) DropCounter() time.Duration  { return e.dropCounter }
func (e *Engine) GameOver() bool              { return e.gameOver }
func (e *Engine) Paused() bool                { return e.paused }

// Board returns a copy of the playfield.
func (e *Engine) Board() Board { return e.board }

// Active returns a copy of the active piece.
func (e *Engine) Active() Piece { return e.active.Clone() }

// Next returns a copy of the preview piece.
func (e *Engine) Next() Piece { return e.next.Clone() }

// GhostY returns the row the active piece would lock at after a hard drop.
func (e *Engine) GhostY() int {
	y := e.active.Y
	for !e.board.Collides(e.active.Shape, e.active.X, y+1) {
		y++
	}
	return y
}
