package tetris

// EventKind classifies engine notifications.
type EventKind uint8

const (
	EventSpawned EventKind = iota + 1
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventGameOver
	EventPaused
	EventResumed
	EventReset
	EventRotated
)

var eventNames = [...]string{
	EventSpawned:      "spawned",
	EventLocked:       "locked",
	EventLinesCleared: "lines_cleared",
	EventLevelUp:      "level_up",
	EventGameOver:     "game_over",
	EventPaused:       "paused",
	EventResumed:      "resumed",
	EventReset:        "reset",
	EventRotated:      "rotated",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) && eventNames[k] != "" {
		return eventNames[k]
	}
	return "unknown"
}

// Event describes a state transition. Counters reflect the engine right after the transition.
type Event struct {
	Kind  EventKind
	Piece PieceType
	// Lines is the number of rows removed by the sweep for EventLinesCleared.
	Lines      int
	Score      int
	Level      int
	TotalLines int
}

// Listener receives engine events synchronously, inside the call that caused them.
// Listeners must not call back into the engine.
type Listener func(Event)
