package spectate

import "github.com/plus3/blockfall/tetris"

// PieceFrame describes a piece on the wire.
type PieceFrame struct {
	Type  string  `json:"type"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Shape [][]int `json:"shape"`
}

// Frame is the JSON document sent to spectators. Board holds the settled
// cells row by row; 0 is empty and 1..7 are piece types.
type Frame struct {
	Seq            uint64     `json:"seq"`
	Board          [][]int    `json:"board"`
	Active         PieceFrame `json:"active"`
	Next           PieceFrame `json:"next"`
	GhostY         int        `json:"ghost_y"`
	Score          int        `json:"score"`
	Level          int        `json:"level"`
	Lines          int        `json:"lines"`
	DropIntervalMS int64      `json:"drop_interval_ms"`
	GameOver       bool       `json:"game_over"`
	Paused         bool       `json:"paused"`
}

// NewFrame converts a snapshot.
func NewFrame(s tetris.Snapshot) Frame {
	board := make([][]int, tetris.Rows)
	for y := range tetris.Rows {
		row := make([]int, tetris.Cols)
		for x := range tetris.Cols {
			row[x] = int(s.Board[y][x])
		}
		board[y] = row
	}

	return Frame{
		Board:          board,
		Active:         pieceFrame(s.Active),
		Next:           pieceFrame(s.Next),
		GhostY:         s.GhostY,
		Score:          s.Score,
		Level:          s.Level,
		Lines:          s.Lines,
		DropIntervalMS: s.DropInterval.Milliseconds(),
		GameOver:       s.GameOver,
		Paused:         s.Paused,
	}
}

func pieceFrame(p tetris.Piece) PieceFrame {
	shape := make([][]int, len(p.Shape))
	for y, row := range p.Shape {
		shape[y] = make([]int, len(row))
		for x, v := range row {
			shape[y][x] = int(v)
		}
	}
	return PieceFrame{Type: p.Type.String(), X: p.X, Y: p.Y, Shape: shape}
}
