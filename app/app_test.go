package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/app"
	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

type fixed tetris.PieceType

func (f fixed) IntN(int) int { return int(f) - 1 }

type recorder struct {
	frames []tetris.Snapshot
}

func (r *recorder) Render(s tetris.Snapshot) { r.frames = append(r.frames, s) }

func quiet() config.Config {
	cfg := config.Default()
	cfg.Sound = false
	return cfg
}

func systemNames(s *loop.Scheduler) []string {
	var names []string
	for _, sys := range s.GetStats().Systems {
		names = append(names, sys.Name)
	}
	return names
}

func TestSessionBuild(t *testing.T) {
	t.Run("without spectators", func(t *testing.T) {
		s, err := app.New(context.Background(), quiet(), zerolog.Nop())
		require.NoError(t, err)
		defer s.Close()

		rec := &recorder{}
		sched := s.Build(autoplay.New(), rec)
		assert.Same(t, s.Scheduler, sched)
		assert.Nil(t, s.Publisher)
		assert.Equal(t, []string{"InputSystem", "GravitySystem", "RenderSystem"}, systemNames(sched))

		sched.Once(time.Millisecond)
		assert.Len(t, rec.frames, 1)
	})

	t.Run("with spectators", func(t *testing.T) {
		cfg := quiet()
		cfg.SpectateAddr = "127.0.0.1:0"

		s, err := app.New(context.Background(), cfg, zerolog.Nop())
		require.NoError(t, err)
		defer s.Close()

		sched := s.Build(nil, &recorder{})
		require.NotNil(t, s.Publisher)
		require.NotNil(t, s.Server)
		assert.Equal(t, []string{"GravitySystem", "RenderSystem", "RenderSystem"}, systemNames(sched))

		sched.Once(time.Millisecond)
		frame, ok := s.Publisher.Latest()
		require.True(t, ok)
		assert.Equal(t, 1, frame.Level)
	})
}

func TestSessionRecordsScores(t *testing.T) {
	cfg := quiet()
	cfg.ScoresPath = filepath.Join(t.TempDir(), "scores.db")

	s, err := app.New(context.Background(), cfg, zerolog.Nop(), tetris.WithRand(fixed(tetris.PieceO)))
	require.NoError(t, err)
	assert.Empty(t, s.Best())

	for !s.Engine.GameOver() {
		s.Engine.HardDrop()
	}

	require.Eventually(t, func() bool { return len(s.Best()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, s.Engine.Score(), s.Best()[0].Score)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	store, err := scores.Open(context.Background(), cfg.ScoresPath, cfg.ScoresKeep)
	require.NoError(t, err)
	defer store.Close()

	top, err := store.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 1)

	again, err := app.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, top, again.Best())
}

func TestSessionFlushesScoresOnClose(t *testing.T) {
	cfg := quiet()
	cfg.ScoresPath = filepath.Join(t.TempDir(), "scores.db")

	s, err := app.New(context.Background(), cfg, zerolog.Nop(), tetris.WithRand(fixed(tetris.PieceO)))
	require.NoError(t, err)
	for !s.Engine.GameOver() {
		s.Engine.HardDrop()
	}
	require.NoError(t, s.Close())

	store, err := scores.Open(context.Background(), cfg.ScoresPath, cfg.ScoresKeep)
	require.NoError(t, err)
	defer store.Close()

	top, err := store.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestSessionEngineOptions(t *testing.T) {
	cfg := quiet()
	cfg.Seed = 42
	cfg.StartPaused = true

	a, err := app.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()
	b, err := app.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, a.Engine.Paused())
	assert.Equal(t, a.Engine.Active().Type, b.Engine.Active().Type)
	assert.Equal(t, a.Engine.Next().Type, b.Engine.Next().Type)
}

func TestSessionRejectsInvalidConfig(t *testing.T) {
	cfg := quiet()
	cfg.ScoresKeep = 0

	_, err := app.New(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrInvalid)
}
