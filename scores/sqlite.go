package scores

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS scores (
	id TEXT PRIMARY KEY,
	score INTEGER NOT NULL,
	lines INTEGER NOT NULL,
	level INTEGER NOT NULL,
	played_at INTEGER NOT NULL
);`

const ordering = `ORDER BY score DESC, played_at ASC, rowid ASC`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db   *sql.DB
	keep int
}

// OpenSQLite opens or creates the database at path and bootstraps its schema.
func OpenSQLite(ctx context.Context, path string, keep int) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLite{db: db, keep: normalizeKeep(keep)}, nil
}

func (s *SQLite) Submit(ctx context.Context, e Entry) (int, error) {
	e, err := prepare(e)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scores (id, score, lines, level, played_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID.String(), e.Score, e.Lines, e.Level, e.PlayedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert score: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM scores WHERE id NOT IN (SELECT id FROM scores `+ordering+` LIMIT ?)`,
		s.keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to trim scores: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT id FROM scores `+ordering)
	if err != nil {
		return 0, fmt.Errorf("failed to rank score: %w", err)
	}
	rank, err := rankOf(rows, e.ID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to rank score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit score: %w", err)
	}
	return rank, nil
}

func (s *SQLite) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = s.keep
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, lines, level, played_at FROM scores `+ordering+` LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			id       string
			playedAt int64
		)
		if err := rows.Scan(&id, &e.Score, &e.Lines, &e.Level, &playedAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt score id %q: %w", id, err)
		}
		e.PlayedAt = time.Unix(0, playedAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// idRows is the part of *sql.Rows the rank scan reads.
type idRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// rankOf returns the 1-based position of id among rows, or 0 when absent.
// rows is closed before returning.
func rankOf(rows idRows, id string) (int, error) {
	defer rows.Close()

	rank, pos := 0, 0
	for rows.Next() {
		pos++
		var got string
		if err := rows.Scan(&got); err != nil {
			return 0, err
		}
		if got == id {
			rank = pos
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return rank, rows.Close()
}
