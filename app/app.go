// Package app assembles a playable session from a config: engine, score
// store, spectator server and sound, plus the frame loop that drives them.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/spectate"
	"github.com/plus3/blockfall/tetris"
)

const submitBuffer = 8

// Session owns everything one game needs besides the frontend.
type Session struct {
	Engine    *tetris.Engine
	Scheduler *loop.Scheduler
	// Sound is nil when sound is disabled or the speaker failed to open.
	Sound *audio.SoundManager
	// Publisher and Server are nil without a spectator address.
	Publisher *spectate.Publisher
	Server    *spectate.Server

	cfg    config.Config
	log    zerolog.Logger
	store  scores.Store
	cancel context.CancelFunc
	wg     sync.WaitGroup

	submits  chan scores.Entry
	recorded chan struct{}

	mu   sync.RWMutex
	best []scores.Entry

	closeOnce sync.Once
	closeErr  error
}

// New opens the score store, starts the spectator server when configured,
// initializes sound when enabled and builds the engine. opts are appended
// to the engine options derived from cfg.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger, opts ...tetris.Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := scores.Open(ctx, cfg.ScoresPath, cfg.ScoresKeep)
	if err != nil {
		return nil, fmt.Errorf("app: open scores: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		cfg:      cfg,
		log:      log,
		store:    store,
		cancel:   cancel,
		submits:  make(chan scores.Entry, submitBuffer),
		recorded: make(chan struct{}),
	}

	if best, err := store.Top(ctx, cfg.ScoresKeep); err != nil {
		log.Warn().Err(err).Msg("could not load high scores")
	} else {
		s.best = best
	}

	go s.recordScores(ctx)

	if cfg.Sound {
		sound := audio.NewSoundManager(cfg.Volume)
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("sound disabled")
		} else {
			s.Sound = sound
		}
	}

	engineOpts := []tetris.Option{
		tetris.WithStartPaused(cfg.StartPaused),
		tetris.WithListener(logging.EngineListener(log)),
		tetris.WithListener(s.onEvent),
	}
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, tetris.WithSeed(cfg.Seed))
	}
	if s.Sound != nil {
		engineOpts = append(engineOpts, tetris.WithListener(s.Sound.Listener()))
	}
	s.Engine = tetris.New(append(engineOpts, opts...)...)
	s.Scheduler = loop.NewScheduler(s.Engine)

	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub(log)
		s.Publisher = spectate.NewPublisher(hub, log)
		s.Server = spectate.NewServer(hub, s.Publisher, store, log)

		s.wg.Add(2)
		go func() {
			defer s.wg.Done()
			hub.Run(ctx)
		}()
		go func() {
			defer s.wg.Done()
			log.Info().Str("addr", cfg.SpectateAddr).Msg("spectator server listening")
			if err := s.Server.ListenAndServe(ctx, cfg.SpectateAddr); err != nil {
				log.Error().Err(err).Msg("spectator server failed")
			}
		}()
	}

	return s, nil
}

// Build registers the frame systems in order: input, gravity, the spectator
// feed and the frontend renderer. input and renderer may be nil.
func (s *Session) Build(input loop.InputSource, renderer loop.Renderer) *loop.Scheduler {
	if input != nil {
		s.Scheduler.Register(&loop.InputSystem{Source: input})
	}
	s.Scheduler.Register(&loop.GravitySystem{})
	if s.Publisher != nil {
		s.Scheduler.Register(&loop.RenderSystem{Renderer: s.Publisher, Interval: s.cfg.SpectateInterval})
	}
	if renderer != nil {
		s.Scheduler.Register(&loop.RenderSystem{Renderer: renderer})
	}
	return s.Scheduler
}

// Best returns the cached high-score table.
func (s *Session) Best() []scores.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.best
}

func (s *Session) onEvent(ev tetris.Event) {
	if ev.Kind != tetris.EventGameOver {
		return
	}
	entry := scores.Entry{Score: ev.Score, Lines: ev.TotalLines, Level: ev.Level}
	select {
	case s.submits <- entry:
	default:
		s.log.Warn().Int("score", ev.Score).Msg("score submission queue full")
	}
}

func (s *Session) recordScores(ctx context.Context) {
	defer close(s.recorded)

	for entry := range s.submits {
		rank, err := s.store.Submit(ctx, entry)
		if err != nil {
			s.log.Error().Err(err).Int("score", entry.Score).Msg("could not save score")
			continue
		}
		if rank > 0 {
			s.log.Info().Int("score", entry.Score).Int("rank", rank).Msg("new high score")
		}

		best, err := s.store.Top(ctx, s.cfg.ScoresKeep)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not load high scores")
			continue
		}
		s.mu.Lock()
		s.best = best
		s.mu.Unlock()
	}
}

// Close stops the spectator server, flushes pending scores and releases the
// store and the speaker. The engine must no longer be driven.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.submits)
		<-s.recorded

		s.cancel()
		s.wg.Wait()

		if s.Sound != nil {
			s.Sound.Close()
		}
		s.closeErr = s.store.Close()
	})
	return s.closeErr
}
