package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/tetris"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("json honours the level", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := logging.New(logging.Options{Level: "warn", Format: "json", Output: &buf})
		require.NoError(t, err)

		log.Info().Msg("hidden")
		log.Warn().Str("k", "v").Msg("shown")

		got := lines(t, &buf)
		require.Len(t, got, 1)
		assert.Equal(t, "shown", got[0]["message"])
		assert.Equal(t, "v", got[0]["k"])
		assert.Contains(t, got[0], "time")
	})

	t.Run("console is human readable", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := logging.New(logging.Options{Output: &buf, NoColor: true})
		require.NoError(t, err)

		log.Info().Int("score", 40).Msg("lines_cleared")
		assert.Contains(t, buf.String(), "lines_cleared")
		assert.Contains(t, buf.String(), "score=40")
	})

	t.Run("rejects unknown settings", func(t *testing.T) {
		_, err := logging.New(logging.Options{Level: "loud"})
		assert.Error(t, err)
		_, err = logging.New(logging.Options{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")
	log, closer, err := logging.Open("info", "json", path)
	require.NoError(t, err)

	log.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)

	_, closer, err = logging.Open("info", "console", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestEngineListener(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	var b tetris.Board
	for x := 2; x < tetris.Cols; x++ {
		b[tetris.Rows-1][x] = tetris.PieceI
	}
	e := tetris.New(
		tetris.WithBoard(b),
		tetris.WithSeed(1),
		tetris.WithListener(logging.EngineListener(log)),
	)

	buf.Reset()
	listener := logging.EngineListener(log)
	listener(tetris.Event{Kind: tetris.EventSpawned, Piece: tetris.PieceT})
	listener(tetris.Event{Kind: tetris.EventLinesCleared, Lines: 2, Score: 100, TotalLines: 2})
	listener(tetris.Event{Kind: tetris.EventGameOver, Score: 100, Level: 1, TotalLines: 2})

	got := lines(t, &buf)
	require.Len(t, got, 2, "spawns are debug")
	assert.Equal(t, "lines_cleared", got[0]["message"])
	assert.EqualValues(t, 2, got[0]["lines"])
	assert.Equal(t, "game_over", got[1]["message"])
	assert.EqualValues(t, 100, got[1]["score"])

	buf.Reset()
	e.TogglePause()
	got = lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "paused", got[0]["message"])
}
