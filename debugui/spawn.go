package debugui

import "github.com/plus3/blockfall/loop"

// New returns a system with the default windows: the engine inspector and
// performance stats for sched.
func New(sched *loop.Scheduler) *System {
	return &System{
		Windows: []Window{
			NewEngineInspector(),
			NewPerformanceStats(sched, 120),
		},
	}
}
