// Package spectate publishes a running game to read-only network spectators:
// a websocket feed of frames and a small JSON API for the current state and
// the high-score table.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/scores"
)

const maxScoresLimit = 100

// Server exposes the hub and publisher over HTTP.
type Server struct {
	r         *chi.Mux
	hub       *Hub
	publisher *Publisher
	scores    scores.Store
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

// NewServer installs middleware and registers routes. scores may be nil.
func NewServer(hub *Hub, publisher *Publisher, store scores.Store, log zerolog.Logger) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		hub:       hub,
		publisher: publisher,
		scores:    store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// spectators are read-only, any origin may watch
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/state", s.handleState)
	s.r.Get("/scores", s.handleScores)
	s.r.Get("/ws", s.handleWebsocket)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the router for tests and embedding.
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "spectators": s.hub.Clients()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.publisher.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_frame")
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		writeJSON(w, http.StatusOK, []scores.Entry{})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxScoresLimit {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}

	entries, err := s.scores.Top(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", chimw.GetReqID(r.Context())).Msg("load scores")
		writeError(w, http.StatusInternalServerError, "scores_unavailable")
		return
	}
	if entries == nil {
		entries = []scores.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		s.log.Debug().Err(err).Msg("websocket upgrade")
		return
	}

	client := newClient(s.hub, conn)
	if !s.hub.add(client) {
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
