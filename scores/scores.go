// Package scores keeps the best finished games.
package scores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultKeep is the number of entries a store retains unless told otherwise.
const DefaultKeep = 3

// ErrInvalidEntry is returned when submitting an entry with negative counters.
var ErrInvalidEntry = errors.New("scores: invalid entry")

// Entry is one finished game.
type Entry struct {
	ID       uuid.UUID `json:"id"`
	Score    int       `json:"score"`
	Lines    int       `json:"lines"`
	Level    int       `json:"level"`
	PlayedAt time.Time `json:"played_at"`
}

// Store persists the best entries. Implementations are safe for concurrent use.
type Store interface {
	// Submit records e and returns its 1-based rank among the kept entries,
	// or 0 when it did not place.
	Submit(ctx context.Context, e Entry) (int, error)
	// Top returns up to n kept entries, best first. n <= 0 returns all of them.
	Top(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// Open returns a SQLite store at path, or an in-memory store when path is empty.
func Open(ctx context.Context, path string, keep int) (Store, error) {
	if path == "" {
		return NewMemory(keep), nil
	}
	return OpenSQLite(ctx, path, keep)
}

func prepare(e Entry) (Entry, error) {
	if e.Score < 0 || e.Lines < 0 || e.Level < 0 {
		return e, fmt.Errorf("%w: score=%d lines=%d level=%d", ErrInvalidEntry, e.Score, e.Lines, e.Level)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.PlayedAt.IsZero() {
		e.PlayedAt = time.Now()
	}
	e.PlayedAt = e.PlayedAt.UTC()
	return e, nil
}

// before reports whether a ranks ahead of b: higher score first, then the earlier game.
func before(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.PlayedAt.Before(b.PlayedAt)
}

func normalizeKeep(keep int) int {
	if keep <= 0 {
		return DefaultKeep
	}
	return keep
}
