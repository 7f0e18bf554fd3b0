package tetris

import "fmt"

// PieceType identifies one of the seven tetrominoes. The zero value marks an empty cell.
type PieceType uint8

const (
	Empty PieceType = iota
	PieceI
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// PieceTypes lists every playable piece type in id order.
var PieceTypes = [...]PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

const pieceSymbols = " IJLOSTZ"

func (t PieceType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PieceType(%d)", uint8(t))
	}
	return pieceSymbols[t : t+1]
}

// Valid reports whether t is one of the seven playable types.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceZ
}

// ParsePieceType maps a piece symbol (I, J, L, O, S, T, Z) to its type.
func ParsePieceType(r rune) (PieceType, bool) {
	for i, s := range pieceSymbols {
		if i > 0 && s == r {
			return PieceType(i), true
		}
	}
	return Empty, false
}

// Shape is a square matrix of cells. Occupied cells hold the owning piece's type.
type Shape [][]PieceType

var templates = [...]Shape{
	PieceI: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	PieceJ: {
		{2, 0, 0},
		{2, 2, 2},
		{0, 0, 0},
	},
	PieceL: {
		{0, 0, 3},
		{3, 3, 3},
		{0, 0, 0},
	},
	PieceO: {
		{4, 4},
		{4, 4},
	},
	PieceS: {
		{0, 5, 5},
		{5, 5, 0},
		{0, 0, 0},
	},
	PieceT: {
		{0, 6, 0},
		{6, 6, 6},
		{0, 0, 0},
	},
	PieceZ: {
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	},
}

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y := range s {
		out[y] = make([]PieceType, len(s[y]))
		copy(out[y], s[y])
	}
	return out
}

// Equal reports whether both shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells calls fn for every occupied cell with its offset inside the shape.
func (s Shape) Cells(fn func(dx, dy int, t PieceType)) {
	for dy, row := range s {
		for dx, v := range row {
			if v != Empty {
				fn(dx, dy, v)
			}
		}
	}
}

// Rotate returns a copy of s turned 90 degrees: clockwise for dir > 0 and
// counter-clockwise for dir < 0. The input is left untouched.
func Rotate(s Shape, dir int) Shape {
	n := len(s)
	out := make(Shape, n)
	for i := range out {
		out[i] = make([]PieceType, n)
	}

	// transpose
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[x][y] = s[y][x]
		}
	}

	if dir > 0 {
		for _, row := range out {
			for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
	} else {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	return out
}

// Piece is a tetromino with its own shape copy and a board position.
type Piece struct {
	Shape Shape
	Type  PieceType
	X, Y  int
}

// NewPiece returns a piece of type t at the origin. It panics on an invalid type.
func NewPiece(t PieceType) Piece {
	if !t.Valid() {
		panic(fmt.Sprintf("tetris: invalid piece type %d", uint8(t)))
	}
	return Piece{Shape: templates[t].Clone(), Type: t}
}

// Clone returns a copy of the piece that shares no cells with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}
