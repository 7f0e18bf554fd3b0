package autoplay

import "github.com/plus3/blockfall/tetris"

// Weights scale the board features of a candidate placement.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Bumpiness float64
}

// DefaultWeights favours flat, hole-free boards and cleared lines.
var DefaultWeights = Weights{
	Height:    -0.510066,
	Lines:     0.760666,
	Holes:     -0.35663,
	Bumpiness: -0.184483,
}

// Features summarizes a board after a placement.
type Features struct {
	Height    int
	Lines     int
	Holes     int
	Bumpiness int
}

// Score weighs f.
func (w Weights) Score(f Features) float64 {
	return w.Height*float64(f.Height) +
		w.Lines*float64(f.Lines) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness)
}

// Measure computes the features of b. Lines is left at zero.
func Measure(b *tetris.Board) Features {
	var f Features
	var heights [tetris.Cols]int

	for x := range tetris.Cols {
		top := tetris.Rows
		for y := range tetris.Rows {
			if b[y][x] != tetris.Empty {
				top = y
				break
			}
		}
		heights[x] = tetris.Rows - top
		f.Height += heights[x]

		for y := top + 1; y < tetris.Rows; y++ {
			if b[y][x] == tetris.Empty {
				f.Holes++
			}
		}
	}

	for x := 0; x < tetris.Cols-1; x++ {
		d := heights[x] - heights[x+1]
		if d < 0 {
			d = -d
		}
		f.Bumpiness += d
	}
	return f
}

// Placement is a resting position for the active piece.
type Placement struct {
	Shape    tetris.Shape
	Rotation int
	X, Y     int
	Features Features
	Score    float64
}

// Drop simulates dropping shape straight down from (x, y) on a copy of board.
// It reports false if the shape does not fit at the starting position.
func Drop(board tetris.Board, piece tetris.Piece, w Weights) (Placement, bool) {
	if board.Collides(piece.Shape, piece.X, piece.Y) {
		return Placement{}, false
	}

	y := piece.Y
	for !board.Collides(piece.Shape, piece.X, y+1) {
		y++
	}
	piece.Y = y

	board.Merge(piece)
	lines := board.Sweep()

	f := Measure(&board)
	f.Lines = lines
	return Placement{
		Shape:    piece.Shape,
		X:        piece.X,
		Y:        y,
		Features: f,
		Score:    w.Score(f),
	}, true
}

// Best evaluates every distinct clockwise rotation of piece at every column
// reachable from its current row and returns the highest scoring placement.
func Best(board tetris.Board, piece tetris.Piece, w Weights) (Placement, bool) {
	var (
		best  Placement
		found bool
		seen  []tetris.Shape
	)

	shape := piece.Shape
	for rotation := range 4 {
		if rotation > 0 {
			shape = tetris.Rotate(shape, 1)
		}
		if contains(seen, shape) {
			continue
		}
		seen = append(seen, shape)

		width := shape.Width()
		for x := -width; x < tetris.Cols+width; x++ {
			candidate := tetris.Piece{Shape: shape, Type: piece.Type, X: x, Y: piece.Y}
			p, ok := Drop(board, candidate, w)
			if !ok {
				continue
			}
			p.Rotation = rotation
			if !found || p.Score > best.Score {
				best = p
				found = true
			}
		}
	}
	return best, found
}

func contains(shapes []tetris.Shape, s tetris.Shape) bool {
	for _, o := range shapes {
		if o.Equal(s) {
			return true
		}
	}
	return false
}
