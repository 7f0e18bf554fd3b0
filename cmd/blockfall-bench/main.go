// Command blockfall-bench runs the engine headless under the autoplay player
// and reports throughput, frame times and memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// restartSystem starts a new game after every game over, up to Limit games.
type restartSystem struct {
	Limit int
	Games int
	Done  bool
}

func (s *restartSystem) Execute(frame *loop.UpdateFrame) {
	if !frame.Engine.GameOver() || s.Done {
		return
	}
	s.Games++
	if s.Limit > 0 && s.Games >= s.Limit {
		s.Done = true
		return
	}
	frame.Commands.Push(loop.ActionReset)
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The longest the benchmark should run for.")
	games := flag.Int("games", 0, "Stop after this many games. Zero runs until the duration elapses.")
	seed := flag.Uint64("seed", 1, "Piece sequence seed.")
	step := flag.Duration("step", time.Second/60, "Simulated time per frame.")
	every := flag.Int("every", 1, "Frames between autoplay actions.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	log, err := logging.New(logging.Options{Level: *logLevel, Format: "console", Output: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	report := &Report{
		Duration: *duration,
		GameCap:  *games,
		Seed:     *seed,
		Step:     *step,
		FrameTime: Stats{
			Samples: make([]time.Duration, 0),
		},
		GCPauseMetrics: *gcPauseMetrics,
	}

	engine := tetris.New(
		tetris.WithSeed(*seed),
		tetris.WithListener(report.Record),
		tetris.WithListener(func(ev tetris.Event) {
			if ev.Kind == tetris.EventGameOver {
				log.Debug().Int("score", ev.Score).Int("lines", ev.TotalLines).Msg("game over")
			}
		}),
	)

	player := autoplay.New()
	player.Every = *every
	restart := &restartSystem{Limit: *games}

	scheduler := loop.NewScheduler(engine)
	scheduler.Register(&loop.InputSystem{Source: player})
	scheduler.Register(&loop.GravitySystem{})
	scheduler.Register(restart)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Dur("duration", *duration).Int("games", *games).Msg("running benchmark")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for !restart.Done {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			scheduler.Once(*step)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Frames = scheduler.GetStats().Frames
	report.Games = restart.Games
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Int("games", report.Games).Int("pieces", report.Pieces).Msg("benchmark finished")

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
}
