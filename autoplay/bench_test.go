package autoplay_test

import (
	"testing"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

func BenchmarkBest(b *testing.B) {
	var board tetris.Board
	fillRow(&board, tetris.Rows-1, 3)
	fillRow(&board, tetris.Rows-2, 3, 7)
	piece := tetris.NewPiece(tetris.PieceT)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		autoplay.Best(board, piece, autoplay.DefaultWeights)
	}
}

func BenchmarkPlayerFrame(b *testing.B) {
	e := tetris.New(tetris.WithSeed(7))
	player := autoplay.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if e.GameOver() {
			e.Reset()
		}
		for _, a := range player.Poll(e.Snapshot()) {
			loop.Apply(e, a)
		}
	}
}
