// Package audio plays short procedural sound cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/blockfall/tetris"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound.
type Cue int

const (
	CueNone Cue = iota
	CueRotate
	CueLock
	CueClear
	CueLevelUp
	CueGameOver
)

var cueNames = [...]string{
	CueNone:     "none",
	CueRotate:   "rotate",
	CueLock:     "lock",
	CueClear:    "clear",
	CueLevelUp:  "level_up",
	CueGameOver: "game_over",
}

func (c Cue) String() string {
	if c >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps an engine event to the cue it triggers.
func CueFor(ev tetris.Event) Cue {
	switch ev.Kind {
	case tetris.EventRotated:
		return CueRotate
	case tetris.EventLocked:
		return CueLock
	case tetris.EventLinesCleared:
		return CueClear
	case tetris.EventLevelUp:
		return CueLevelUp
	case tetris.EventGameOver:
		return CueGameOver
	}
	return CueNone
}

// SoundManager owns the speaker and a mixer that cues are added to.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      float64
	initialized bool
	played      int
}

// NewSoundManager creates a manager. volume is linear, 1 is unchanged.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. It is safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	sm.ctrl = &beep.Ctrl{Streamer: sm.mixer}
	speaker.Play(newVolume(sm.ctrl, sm.volume))
	sm.initialized = true
	return nil
}

// Close silences everything and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.ctrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues cue. lines only affects CueClear. It does nothing before Initialize.
func (sm *SoundManager) Play(cue Cue, lines int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || cue == CueNone {
		return
	}

	s := Effect(cue, lines, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
}

// SetPaused mutes or resumes all playback.
func (sm *SoundManager) SetPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.ctrl.Paused = paused
	speaker.Unlock()
}

// Played returns how many cues were queued since Initialize.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Listener returns an engine listener that plays the matching cue for each event.
func (sm *SoundManager) Listener() tetris.Listener {
	return func(ev tetris.Event) {
		sm.Play(CueFor(ev), ev.Lines)
	}
}
