package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence replays piece types in order, cycling when exhausted.
type sequence struct {
	types []tetris.PieceType
	pos   int
}

func (s *sequence) IntN(n int) int {
	t := s.types[s.pos%len(s.types)]
	s.pos++
	return int(t) - 1
}

func only(t tetris.PieceType) tetris.Option {
	return tetris.WithRand(&sequence{types: []tetris.PieceType{t}})
}

// moveTo shifts the active piece until its X equals x or it is blocked.
func moveTo(e *tetris.Engine, x int) {
	for e.Active().X < x && e.MoveRight() {
	}
	for e.Active().X > x && e.MoveLeft() {
	}
}

func TestEngineSpawn(t *testing.T) {
	e := tetris.New(tetris.WithRand(&sequence{types: []tetris.PieceType{tetris.PieceI, tetris.PieceO, tetris.PieceT}}))

	active := e.Active()
	assert.Equal(t, tetris.PieceI, active.Type)
	assert.Equal(t, tetris.Cols/2-2, active.X)
	assert.Equal(t, 0, active.Y)
	assert.Equal(t, tetris.PieceO, e.Next().Type)

	e.HardDrop()
	assert.Equal(t, tetris.PieceO, e.Active().Type)
	assert.Equal(t, tetris.Cols/2-1, e.Active().X)
	assert.Equal(t, tetris.PieceT, e.Next().Type)

	assert.Equal(t, 1, e.Level())
	assert.Equal(t, time.Second, e.DropInterval())
	assert.False(t, e.GameOver())
}

func TestEngineMove(t *testing.T) {
	e := tetris.New(only(tetris.PieceT))

	t.Run("changes x by exactly dir or not at all", func(t *testing.T) {
		for _, dir := range []int{-1, 1, 1, -1} {
			before := e.Active()
			moved := e.Move(dir)
			after := e.Active()
			if moved {
				assert.Equal(t, before.X+dir, after.X)
			} else {
				assert.Equal(t, before.X, after.X)
			}
			assert.Equal(t, before.Y, after.Y)
		}
	})

	t.Run("walls", func(t *testing.T) {
		for e.MoveLeft() {
		}
		assert.Equal(t, 0, e.Active().X)
		assert.False(t, e.MoveLeft())
		assert.Equal(t, 0, e.Active().X)

		for e.MoveRight() {
		}
		assert.Equal(t, tetris.Cols-3, e.Active().X)
		assert.False(t, e.MoveRight())
	})
}

func TestEngineRotate(t *testing.T) {
	t.Run("unobstructed turns return to the spawn shape", func(t *testing.T) {
		e := tetris.New(only(tetris.PieceJ))
		orig := e.Active()
		for range 4 {
			require.True(t, e.Rotate(1))
		}
		assert.True(t, orig.Shape.Equal(e.Active().Shape))
		assert.Equal(t, orig.X, e.Active().X)
	})

	t.Run("kick away from the right wall", func(t *testing.T) {
		e := tetris.New(only(tetris.PieceI))
		require.True(t, e.Rotate(1))
		moveTo(e, tetris.Cols)
		// the vertical bar sits in column 2 of the shape
		require.Equal(t, tetris.Cols-3, e.Active().X)

		require.True(t, e.Rotate(1))
		assert.Equal(t, tetris.Cols-4, e.Active().X)
		assert.False(t, e.Board().Collides(e.Active().Shape, e.Active().X, e.Active().Y))
	})

	t.Run("blocked rotation is undone", func(t *testing.T) {
		var well tetris.Board
		for y := 4; y < tetris.Rows; y++ {
			fillRow(&well, y, 0)
		}
		e := tetris.New(only(tetris.PieceI), tetris.WithBoard(well))

		require.True(t, e.Rotate(1))
		moveTo(e, -2)
		require.Equal(t, -2, e.Active().X)
		for e.SoftDrop() {
			if e.Active().Y == tetris.Rows-4 {
				break
			}
		}
		require.Equal(t, tetris.Rows-4, e.Active().Y)

		before := e.Active()
		assert.False(t, e.Rotate(1))
		assert.False(t, e.Rotate(-1))
		after := e.Active()
		assert.True(t, before.Shape.Equal(after.Shape))
		assert.Equal(t, before.X, after.X)
		assert.Equal(t, before.Y, after.Y)
	})

	t.Run("invalid direction panics", func(t *testing.T) {
		e := tetris.New()
		assert.Panics(t, func() { e.Rotate(0) })
		assert.Panics(t, func() { e.Rotate(2) })
	})
}

func TestEngineLineScores(t *testing.T) {
	want := map[int]int{1: 40, 2: 100, 3: 300, 4: 1200}
	for n, score := range want {
		var b tetris.Board
		for y := tetris.Rows - n; y < tetris.Rows; y++ {
			fillRow(&b, y, 0)
		}
		e := tetris.New(only(tetris.PieceI), tetris.WithBoard(b))

		require.True(t, e.Rotate(1))
		moveTo(e, -2)
		e.HardDrop()

		assert.Equal(t, score, e.Score(), "lines=%d", n)
		assert.Equal(t, n, e.Lines())
		assert.Equal(t, 1, e.Level())
		board := e.Board()
		assert.Equal(t, 4-n, board.Occupied(), "only the part of the I above the cleared rows remains")
	}
}

func TestEngineLevelUp(t *testing.T) {
	var ups []tetris.Event
	e := tetris.New(only(tetris.PieceO), tetris.WithListener(func(ev tetris.Event) {
		if ev.Kind == tetris.EventLevelUp {
			ups = append(ups, ev)
		}
	}))

	// five O pieces side by side clear two rows and leave the board empty again
	round := func() {
		for _, x := range []int{0, 2, 4, 6, 8} {
			moveTo(e, x)
			e.HardDrop()
		}
	}

	for range 5 {
		round()
	}
	assert.Equal(t, 10, e.Lines())
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 950*time.Millisecond, e.DropInterval())
	assert.Equal(t, 500, e.Score(), "the clearing sweep is scored at the level it started on")
	require.Len(t, ups, 1)
	assert.Equal(t, 2, ups[0].Level)

	round()
	assert.Equal(t, 700, e.Score())
}

func TestEngineTick(t *testing.T) {
	e := tetris.New(only(tetris.PieceO))

	assert.False(t, e.Tick(500*time.Millisecond))
	assert.False(t, e.Tick(500*time.Millisecond), "the counter must exceed the interval")
	assert.Equal(t, 0, e.Active().Y)

	assert.True(t, e.Tick(time.Millisecond))
	assert.Equal(t, 1, e.Active().Y)
	assert.Equal(t, time.Duration(0), e.DropCounter())

	e.Tick(600 * time.Millisecond)
	require.True(t, e.SoftDrop())
	assert.Equal(t, time.Duration(0), e.DropCounter(), "soft drop resets the counter")

	e.TogglePause()
	assert.False(t, e.Tick(5*time.Second))
	assert.Equal(t, 2, e.Active().Y)
	assert.Equal(t, time.Duration(0), e.DropCounter())
}

func TestEnginePause(t *testing.T) {
	e := tetris.New(only(tetris.PieceT), tetris.WithStartPaused(true))
	require.True(t, e.Paused())

	x := e.Active().X
	assert.False(t, e.MoveLeft())
	assert.False(t, e.Rotate(1))
	assert.False(t, e.SoftDrop())
	assert.Equal(t, -1, e.HardDrop())
	assert.Equal(t, x, e.Active().X)

	assert.False(t, e.TogglePause())
	assert.True(t, e.MoveLeft())
}

func TestEngineGameOver(t *testing.T) {
	t.Run("blocked spawn", func(t *testing.T) {
		var b tetris.Board
		b[0][4] = tetris.PieceZ
		var over []tetris.Event
		e := tetris.New(only(tetris.PieceO), tetris.WithBoard(b), tetris.WithListener(func(ev tetris.Event) {
			if ev.Kind == tetris.EventGameOver {
				over = append(over, ev)
			}
		}))

		assert.True(t, e.GameOver())
		assert.Len(t, over, 1)
		assert.False(t, e.MoveLeft())
		assert.False(t, e.MoveRight())
		assert.False(t, e.Rotate(1))
		assert.False(t, e.SoftDrop())
		assert.Equal(t, -1, e.HardDrop())
		assert.False(t, e.Tick(time.Hour))
		assert.True(t, e.Snapshot().GameOver)
	})

	t.Run("stack to the top then reset", func(t *testing.T) {
		var final tetris.Event
		e := tetris.New(only(tetris.PieceO), tetris.WithListener(func(ev tetris.Event) {
			if ev.Kind == tetris.EventGameOver {
				final = ev
			}
		}))

		drops := 0
		for !e.GameOver() {
			require.GreaterOrEqual(t, e.HardDrop(), 0)
			drops++
			require.LessOrEqual(t, drops, tetris.Rows/2)
		}
		assert.Equal(t, tetris.Rows/2, drops)
		assert.Equal(t, tetris.EventGameOver, final.Kind)
		assert.Equal(t, 0, final.Score)
		assert.False(t, e.MoveLeft())

		e.Reset()
		assert.False(t, e.GameOver())
		board := e.Board()
		assert.Equal(t, 0, board.Occupied())
		assert.True(t, e.MoveLeft())
	})
}

func TestEngineOPieceScenario(t *testing.T) {
	t.Run("two rows from an empty board", func(t *testing.T) {
		e := tetris.New(only(tetris.PieceO))
		for _, x := range []int{0, 8, 2, 6, 4} {
			moveTo(e, x)
			require.Equal(t, x, e.Active().X)
			e.HardDrop()
		}
		assert.Equal(t, 100, e.Score())
		assert.Equal(t, 2, e.Lines())
		board := e.Board()
		assert.Equal(t, 0, board.Occupied())
	})

	t.Run("single row", func(t *testing.T) {
		var b tetris.Board
		fillRow(&b, tetris.Rows-1, 8, 9)
		e := tetris.New(only(tetris.PieceO), tetris.WithBoard(b))

		moveTo(e, 8)
		e.HardDrop()

		assert.Equal(t, 40, e.Score())
		assert.Equal(t, 1, e.Lines())
		assert.Equal(t, 1, e.Level())

		board := e.Board()
		assert.Equal(t, [tetris.Cols]tetris.PieceType{}, board[0], "a fresh empty row is inserted at the top")
		assert.Equal(t, tetris.PieceO, board[tetris.Rows-1][8])
		assert.Equal(t, tetris.PieceO, board[tetris.Rows-1][9])
		assert.Equal(t, 2, board.Occupied())
	})
}

func TestEngineEvents(t *testing.T) {
	var b tetris.Board
	fillRow(&b, tetris.Rows-1, 8, 9)

	var kinds []tetris.EventKind
	var cleared tetris.Event
	e := tetris.New(only(tetris.PieceO), tetris.WithBoard(b), tetris.WithListener(func(ev tetris.Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == tetris.EventLinesCleared {
			cleared = ev
		}
	}))
	assert.Equal(t, []tetris.EventKind{tetris.EventReset, tetris.EventSpawned}, kinds)

	kinds = nil
	moveTo(e, 8)
	e.HardDrop()
	assert.Equal(t, []tetris.EventKind{tetris.EventLocked, tetris.EventSpawned, tetris.EventLinesCleared}, kinds)
	assert.Equal(t, tetris.Event{Kind: tetris.EventLinesCleared, Piece: tetris.PieceO, Lines: 1, Score: 40, Level: 1, TotalLines: 1}, cleared)

	kinds = nil
	e.TogglePause()
	e.TogglePause()
	assert.Equal(t, []tetris.EventKind{tetris.EventPaused, tetris.EventResumed}, kinds)

	kinds = nil
	e.Rotate(1)
	assert.Equal(t, []tetris.EventKind{tetris.EventRotated}, kinds)
	assert.Equal(t, "rotated", tetris.EventRotated.String())
}

func TestSnapshotIsolation(t *testing.T) {
	e := tetris.New(only(tetris.PieceL))
	snap := e.Snapshot()

	snap.Active.Shape[0][0] = tetris.PieceZ
	snap.Board[10][5] = tetris.PieceZ
	snap.Next.Shape[1][1] = tetris.Empty

	assert.NotEqual(t, tetris.PieceZ, e.Active().Shape[0][0])
	board := e.Board()
	assert.Equal(t, tetris.Empty, board[10][5])
	assert.Equal(t, tetris.PieceL, e.Next().Shape[1][1])
}

func TestSnapshotCells(t *testing.T) {
	e := tetris.New(only(tetris.PieceO))
	snap := e.Snapshot()

	assert.Equal(t, tetris.Rows-2, snap.GhostY)

	v, active := snap.Cell(4, 0)
	assert.Equal(t, tetris.PieceO, v)
	assert.True(t, active)

	v, active = snap.Cell(0, 0)
	assert.Equal(t, tetris.Empty, v)
	assert.False(t, active)

	assert.True(t, snap.Ghost(5, tetris.Rows-1))
	assert.False(t, snap.Ghost(5, 0))
	assert.Equal(t, 1, snap.Spawned)
}

func TestWithSeedIsDeterministic(t *testing.T) {
	a := tetris.New(tetris.WithSeed(42))
	b := tetris.New(tetris.WithSeed(42))
	for range 20 {
		assert.Equal(t, a.Active().Type, b.Active().Type)
		assert.Equal(t, a.Next().Type, b.Next().Type)
		a.HardDrop()
		b.HardDrop()
	}
}
