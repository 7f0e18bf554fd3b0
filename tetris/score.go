package tetris

import "time"

const (
	LinesPerLevel = 10

	BaseDropInterval = 1000 * time.Millisecond
	MinDropInterval  = 100 * time.Millisecond
	DropIntervalStep = 50 * time.Millisecond
)

var lineScores = [...]int{0, 40, 100, 300, 1200}

// LineScore returns the points for clearing n rows in one sweep at the given level.
func LineScore(n, level int) int {
	if n <= 0 || n >= len(lineScores) {
		return 0
	}
	return lineScores[n] * level
}

// LevelFor returns the level reached after the given number of cleared lines.
func LevelFor(lines int) int {
	return lines/LinesPerLevel + 1
}

// DropIntervalFor returns the automatic drop interval for level, never below MinDropInterval.
func DropIntervalFor(level int) time.Duration {
	return max(MinDropInterval, BaseDropInterval-time.Duration(level-1)*DropIntervalStep)
}
