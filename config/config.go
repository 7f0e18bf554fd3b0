// Package config loads runtime settings from dotenv files, BLOCKFALL_
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "BLOCKFALL_"

// MaxFrameInterval is the longest accepted frame interval. Frontends tick at
// one frame per interval, so longer intervals would round to zero ticks per second.
const MaxFrameInterval = time.Second

// ErrInvalid is wrapped by every validation and parse failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds everything the binaries need to build a session.
type Config struct {
	LogLevel  string
	LogFormat string
	// LogFile redirects logs away from stderr. The terminal frontend needs it
	// because stderr shares the screen.
	LogFile string

	// Seed makes the piece sequence reproducible. Zero picks a random seed.
	Seed uint64

	// ScoresPath is the SQLite database for high scores. Empty keeps scores in memory.
	ScoresPath string
	ScoresKeep int

	// SpectateAddr enables the spectator server when set, e.g. ":8080".
	SpectateAddr     string
	SpectateInterval time.Duration

	Sound  bool
	Volume float64

	Debug         bool
	StartPaused   bool
	FrameInterval time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:         "info",
		LogFormat:        "console",
		ScoresKeep:       3,
		SpectateInterval: 100 * time.Millisecond,
		Sound:            true,
		Volume:           0.8,
		FrameInterval:    time.Second / 60,
	}
}

// Load reads the optional dotenv files, then the process environment. Missing
// files are ignored; values already in the environment win over file values.
func Load(files ...string) (Config, error) {
	fileVars := map[string]string{}
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vars {
			if _, ok := fileVars[k]; !ok {
				fileVars[k] = v
			}
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

// FromLookup builds a Config from Default overridden by the variables lookup finds.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}

	p.stringVar("LOG_LEVEL", &c.LogLevel)
	p.stringVar("LOG_FORMAT", &c.LogFormat)
	p.stringVar("LOG_FILE", &c.LogFile)
	p.uint64Var("SEED", &c.Seed)
	p.stringVar("SCORES_PATH", &c.ScoresPath)
	p.intVar("SCORES_KEEP", &c.ScoresKeep)
	p.stringVar("SPECTATE_ADDR", &c.SpectateAddr)
	p.durationVar("SPECTATE_INTERVAL", &c.SpectateInterval)
	p.boolVar("SOUND", &c.Sound)
	p.floatVar("VOLUME", &c.Volume)
	p.boolVar("DEBUG", &c.Debug)
	p.boolVar("START_PAUSED", &c.StartPaused)
	p.durationVar("FRAME_INTERVAL", &c.FrameInterval)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// BindFlags registers a flag for every field, defaulting to the current values.
func (c *Config) BindFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console or json)")
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file instead of stderr")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "piece sequence seed, 0 for random")
	flags.StringVar(&c.ScoresPath, "scores", c.ScoresPath, "high score database path, empty for in-memory")
	flags.IntVar(&c.ScoresKeep, "scores-keep", c.ScoresKeep, "number of high scores to keep")
	flags.StringVar(&c.SpectateAddr, "spectate", c.SpectateAddr, "spectator server address, empty to disable")
	flags.DurationVar(&c.SpectateInterval, "spectate-interval", c.SpectateInterval, "minimum time between spectator frames")
	flags.BoolVar(&c.Sound, "sound", c.Sound, "play sound effects")
	flags.Float64Var(&c.Volume, "volume", c.Volume, "sound volume between 0 and 1")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "show the debug overlay")
	flags.BoolVar(&c.StartPaused, "paused", c.StartPaused, "start paused")
	flags.DurationVar(&c.FrameInterval, "frame", c.FrameInterval, "frame interval")
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat))
	}
	if c.ScoresKeep <= 0 {
		errs = append(errs, fmt.Errorf("%w: scores keep must be positive, got %d", ErrInvalid, c.ScoresKeep))
	}
	if c.FrameInterval <= 0 || c.FrameInterval > MaxFrameInterval {
		errs = append(errs, fmt.Errorf("%w: frame interval must be within (0, %s], got %s", ErrInvalid, MaxFrameInterval, c.FrameInterval))
	}
	if c.SpectateInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: spectate interval must not be negative, got %s", ErrInvalid, c.SpectateInterval))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: volume must be within [0, 1], got %g", ErrInvalid, c.Volume))
	}
	return errors.Join(errs...)
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) get(name string) (string, bool) {
	v, ok := p.lookup(Prefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (p *parser) fail(name, v string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, Prefix, name, v, err))
}

func (p *parser) stringVar(name string, dst *string) {
	if v, ok := p.get(name); ok {
		*dst = v
	}
}

func (p *parser) intVar(name string, dst *int) {
	if v, ok := p.get(name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) uint64Var(name string, dst *uint64) {
	if v, ok := p.get(name); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) floatVar(name string, dst *float64) {
	if v, ok := p.get(name); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = f
	}
}

func (p *parser) boolVar(name string, dst *bool) {
	if v, ok := p.get(name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) durationVar(name string, dst *time.Duration) {
	if v, ok := p.get(name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = d
	}
}
