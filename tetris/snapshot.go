package tetris

import "time"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the engine.
type Snapshot struct {
	Board  Board
	Active Piece
	Next   Piece
	GhostY int

	Score        int
	Level        int
	Lines        int
	DropInterval time.Duration
	Spawned      int

	GameOver bool
	Paused   bool
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:        e.board,
		Active:       e.active.Clone(),
		Next:         e.next.Clone(),
		GhostY:       e.GhostY(),
		Score:        e.score,
		Level:        e.level,
		Lines:        e.lines,
		DropInterval: e.dropInterval,
		Spawned:      e.spawned,
		GameOver:     e.gameOver,
		Paused:       e.paused,
	}
}

// Cell returns what a renderer should draw at (x, y): the board contents with
// the active piece laid over them, and whether the cell belongs to the active piece.
func (s *Snapshot) Cell(x, y int) (PieceType, bool) {
	dx, dy := x-s.Active.X, y-s.Active.Y
	if dy >= 0 && dy < len(s.Active.Shape) && dx >= 0 && dx < len(s.Active.Shape[dy]) {
		if v := s.Active.Shape[dy][dx]; v != Empty {
			return v, true
		}
	}
	return s.Board[y][x], false
}

// Ghost reports whether (x, y) is covered by the landing preview of the active piece.
func (s *Snapshot) Ghost(x, y int) bool {
	dx, dy := x-s.Active.X, y-s.GhostY
	if dy < 0 || dy >= len(s.Active.Shape) || dx < 0 || dx >= len(s.Active.Shape[dy]) {
		return false
	}
	return s.Active.Shape[dy][dx] != Empty
}
