package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestLineScore(t *testing.T) {
	assert.Equal(t, 0, tetris.LineScore(0, 1))
	assert.Equal(t, 40, tetris.LineScore(1, 1))
	assert.Equal(t, 100, tetris.LineScore(2, 1))
	assert.Equal(t, 300, tetris.LineScore(3, 1))
	assert.Equal(t, 1200, tetris.LineScore(4, 1))
	assert.Equal(t, 3600, tetris.LineScore(4, 3))
	assert.Equal(t, 0, tetris.LineScore(5, 1))
}

func TestLevelAndInterval(t *testing.T) {
	tests := []struct {
		lines    int
		level    int
		interval time.Duration
	}{
		{0, 1, time.Second},
		{9, 1, time.Second},
		{10, 2, 950 * time.Millisecond},
		{100, 11, 500 * time.Millisecond},
		{180, 19, 100 * time.Millisecond},
		{200, 21, 100 * time.Millisecond},
		{1000, 101, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		level := tetris.LevelFor(tt.lines)
		assert.Equal(t, tt.level, level, "lines=%d", tt.lines)
		assert.Equal(t, tt.interval, tetris.DropIntervalFor(level), "lines=%d", tt.lines)
	}
}
