package spectate

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const broadcastBuffer = 64

// Hub maintains the set of connected spectators and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	connected atomic.Int64
	dropped   atomic.Int64
	log       zerolog.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled.
// A newly registered client immediately receives the latest frame.
func (h *Hub) Run(ctx context.Context) {
	var latest []byte
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			h.log.Debug().Msg("spectator hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.connected.Store(int64(len(h.clients)))
			h.log.Debug().Str("remote", client.remote).Msg("spectator connected")
			if latest != nil {
				client.send <- latest
			}

		case client := <-h.unregister:
			if h.clients[client] {
				h.remove(client)
				h.log.Debug().Str("remote", client.remote).Msg("spectator disconnected")
			}

		case message := <-h.broadcast:
			latest = message
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.remove(client)
					h.log.Warn().Str("remote", client.remote).Msg("dropping slow spectator")
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.connected.Store(int64(len(h.clients)))
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for every client without blocking. It reports
// false when the hub is backed up and the message was discarded.
func (h *Hub) Broadcast(message []byte) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	return int(h.connected.Load())
}

// Dropped returns how many broadcasts were discarded.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
