package scores

import (
	"context"
	"sync"
)

// Memory is a Store that lives for the process only.
type Memory struct {
	mu      sync.Mutex
	keep    int
	entries []Entry
}

// NewMemory creates an empty store retaining keep entries.
func NewMemory(keep int) *Memory {
	keep = normalizeKeep(keep)
	return &Memory{keep: keep, entries: make([]Entry, 0, keep+1)}
}

func (m *Memory) Submit(ctx context.Context, e Entry) (int, error) {
	e, err := prepare(e)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pos := len(m.entries)
	for i, o := range m.entries {
		if before(e, o) {
			pos = i
			break
		}
	}
	if pos >= m.keep {
		return 0, nil
	}

	m.entries = append(m.entries, Entry{})
	copy(m.entries[pos+1:], m.entries[pos:])
	m.entries[pos] = e
	if len(m.entries) > m.keep {
		m.entries = m.entries[:m.keep]
	}
	return pos + 1, nil
}

func (m *Memory) Top(ctx context.Context, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || n > len(m.entries) {
		n = len(m.entries)
	}
	out := make([]Entry, n)
	copy(out, m.entries[:n])
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
