package tetris

const (
	Rows = 20
	Cols = 10
)

// Board is the playfield. Row 0 is the top; each cell is Empty or the type of the piece that locked there.
type Board [Rows][Cols]PieceType

// Collides reports whether shape placed with its top-left corner at (x, y)
// leaves the board or overlaps an occupied cell.
func (b Board) Collides(shape Shape, x, y int) bool {
	for dy, row := range shape {
		for dx, v := range row {
			if v == Empty {
				continue
			}
			bx, by := x+dx, y+dy
			if bx < 0 || bx >= Cols || by < 0 || by >= Rows {
				return true
			}
			if b[by][bx] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge writes the occupied cells of p into the board using the piece type.
// Cells outside the board are ignored.
func (b *Board) Merge(p Piece) {
	p.Shape.Cells(func(dx, dy int, _ PieceType) {
		bx, by := p.X+dx, p.Y+dy
		if bx < 0 || bx >= Cols || by < 0 || by >= Rows {
			return
		}
		b[by][bx] = p.Type
	})
}

// RowFull reports whether every cell of row y is occupied.
func (b Board) RowFull(y int) bool {
	for _, v := range b[y] {
		if v == Empty {
			return false
		}
	}
	return true
}

// Sweep removes complete rows, shifting the rows above down and inserting
// empty rows at the top. It returns the number of rows removed.
func (b *Board) Sweep() int {
	cleared := 0
	for y := Rows - 1; y >= 0; {
		if !b.RowFull(y) {
			y--
			continue
		}
		copy(b[1:y+1], b[0:y])
		b[0] = [Cols]PieceType{}
		cleared++
		// the row that shifted into y has not been checked yet
	}
	return cleared
}

// Occupied returns the number of non-empty cells.
func (b Board) Occupied() int {
	n := 0
	for y := range b {
		for _, v := range b[y] {
			if v != Empty {
				n++
			}
		}
	}
	return n
}
