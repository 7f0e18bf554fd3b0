// Package logging builds the zerolog loggers used by the binaries and turns
// engine events into log lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/tetris"
)

// Options selects level, format and destination.
type Options struct {
	Level  string
	Format string
	// Output defaults to stderr.
	Output  io.Writer
	NoColor bool
}

// New builds a logger. Format is "console" or "json".
func New(o Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if o.Level != "" {
		l, err := zerolog.ParseLevel(o.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	out := o.Output
	if out == nil {
		out = os.Stderr
	}

	switch o.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, NoColor: o.NoColor, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", o.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open is New writing to path, or to stderr when path is empty. The returned
// closer releases the file and is never nil.
func Open(level, format, path string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		log, err := New(Options{Level: level, Format: format})
		return log, nopCloser{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	log, err := New(Options{Level: level, Format: format, Output: f, NoColor: true})
	if err != nil {
		f.Close()
		return log, nopCloser{}, err
	}
	return log, f, nil
}

// EngineListener logs engine events: piece traffic at debug, scoring and
// state changes at info.
func EngineListener(log zerolog.Logger) tetris.Listener {
	return func(ev tetris.Event) {
		var e *zerolog.Event
		switch ev.Kind {
		case tetris.EventSpawned, tetris.EventLocked, tetris.EventRotated:
			e = log.Debug().Stringer("piece", ev.Piece)
		case tetris.EventLinesCleared:
			e = log.Info().Int("lines", ev.Lines).Int("score", ev.Score).Int("total_lines", ev.TotalLines)
		case tetris.EventLevelUp:
			e = log.Info().Int("level", ev.Level).Int("score", ev.Score)
		case tetris.EventGameOver:
			e = log.Info().Int("score", ev.Score).Int("level", ev.Level).Int("lines", ev.TotalLines)
		default:
			e = log.Info()
		}
		e.Msg(ev.Kind.String())
	}
}
