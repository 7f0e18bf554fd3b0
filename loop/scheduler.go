// Package loop drives a tetris.Engine frame by frame: input, gravity and
// rendering run as ordered systems, and player actions are buffered and
// applied between them.
package loop

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	ActionsApplied  int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes registered systems in order against one engine.
type Scheduler struct {
	engine      *tetris.Engine
	systems     []System
	systemStats []*systemStatsInternal

	frames  int64
	applied int64

	mu      sync.Mutex
	pending []Action
}

// NewScheduler creates a scheduler for the given engine.
func NewScheduler(engine *tetris.Engine) *Scheduler {
	return &Scheduler{
		engine:  engine,
		systems: make([]System, 0),
	}
}

// Engine returns the engine driven by the scheduler.
func (s *Scheduler) Engine() *tetris.Engine {
	return s.engine
}

// Register appends a system. Systems execute in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Enqueue queues actions from outside the frame, for example from an event
// goroutine. They are applied at the start of the next frame. Safe for concurrent use.
func (s *Scheduler) Enqueue(actions ...Action) {
	s.mu.Lock()
	s.pending = append(s.pending, actions...)
	s.mu.Unlock()
}

func (s *Scheduler) takePending(c *Commands) {
	s.mu.Lock()
	c.Push(s.pending...)
	s.pending = s.pending[:0]
	s.mu.Unlock()
}

// Once runs a single frame: pending actions, then every system, then the
// commands the systems queued.
func (s *Scheduler) Once(dt time.Duration) {
	s.frames++

	frame := newUpdateFrame(dt, s.engine)
	s.takePending(frame.Commands)
	s.applied += int64(frame.Commands.Flush(s.engine))

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.applied += int64(frame.Commands.Flush(s.engine))
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:    len(s.systems),
		Frames:         s.frames,
		ActionsApplied: s.applied,
		Systems:        make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
