package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
)

func BenchmarkCollides(b *testing.B) {
	var board tetris.Board
	fillRow(&board, tetris.Rows-1, 4)
	shape := tetris.NewPiece(tetris.PieceT).Shape

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Collides(shape, i%tetris.Cols, tetris.Rows-3)
	}
}

func BenchmarkSweep(b *testing.B) {
	var full tetris.Board
	for y := tetris.Rows - 4; y < tetris.Rows; y++ {
		fillRow(&full, y)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board := full
		board.Sweep()
	}
}

func BenchmarkHardDrop(b *testing.B) {
	e := tetris.New(tetris.WithSeed(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if e.GameOver() {
			e.Reset()
		}
		e.HardDrop()
	}
}

func BenchmarkSnapshot(b *testing.B) {
	e := tetris.New(tetris.WithSeed(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Snapshot()
	}
}
