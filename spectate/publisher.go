package spectate

import (
	"encoding/json"
	"sync"

	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

// Publisher is a loop.Renderer that feeds the hub.
type Publisher struct {
	hub *Hub
	log zerolog.Logger

	mu     sync.RWMutex
	seq    uint64
	latest *Frame
}

// NewPublisher creates a publisher broadcasting through hub.
func NewPublisher(hub *Hub, log zerolog.Logger) *Publisher {
	return &Publisher{hub: hub, log: log}
}

// Render encodes state and hands it to the hub. It never blocks on spectators.
func (p *Publisher) Render(state tetris.Snapshot) {
	frame := NewFrame(state)

	p.mu.Lock()
	p.seq++
	frame.Seq = p.seq
	p.latest = &frame
	p.mu.Unlock()

	payload, err := json.Marshal(frame)
	if err != nil {
		p.log.Error().Err(err).Msg("encode spectator frame")
		return
	}
	p.hub.Broadcast(payload)
}

// Latest returns the most recent frame.
func (p *Publisher) Latest() (Frame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.latest == nil {
		return Frame{}, false
	}
	return *p.latest, true
}
