package scores_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/scores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func played(minutes int) time.Time {
	return epoch.Add(time.Duration(minutes) * time.Minute)
}

func stores(t *testing.T, keep int) map[string]scores.Store {
	t.Helper()

	db, err := scores.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "scores.db"), keep)
	require.NoError(t, err)

	out := map[string]scores.Store{
		"memory": scores.NewMemory(keep),
		"sqlite": db,
	}
	t.Cleanup(func() {
		for _, s := range out {
			s.Close()
		}
	})
	return out
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			rank, err := store.Submit(ctx, scores.Entry{Score: 100, Lines: 2, Level: 1, PlayedAt: played(0)})
			require.NoError(t, err)
			assert.Equal(t, 1, rank)

			rank, err = store.Submit(ctx, scores.Entry{Score: 300, Lines: 4, Level: 1, PlayedAt: played(1)})
			require.NoError(t, err)
			assert.Equal(t, 1, rank)

			rank, err = store.Submit(ctx, scores.Entry{Score: 100, Lines: 1, Level: 1, PlayedAt: played(2)})
			require.NoError(t, err)
			assert.Equal(t, 3, rank, "ties rank after the earlier game")

			rank, err = store.Submit(ctx, scores.Entry{Score: 50, PlayedAt: played(3)})
			require.NoError(t, err)
			assert.Equal(t, 0, rank, "does not place")

			rank, err = store.Submit(ctx, scores.Entry{Score: 200, Lines: 3, Level: 1, PlayedAt: played(4)})
			require.NoError(t, err)
			assert.Equal(t, 2, rank)

			top, err := store.Top(ctx, 0)
			require.NoError(t, err)
			require.Len(t, top, 3)
			assert.Equal(t, []int{300, 200, 100}, []int{top[0].Score, top[1].Score, top[2].Score})
			assert.Equal(t, 2, top[2].Lines, "the earlier of the tied games survives")
			assert.True(t, top[0].PlayedAt.Equal(played(1)))
			for _, e := range top {
				assert.NotEqual(t, uuid.Nil, e.ID)
			}

			top, err = store.Top(ctx, 1)
			require.NoError(t, err)
			require.Len(t, top, 1)
			assert.Equal(t, 300, top[0].Score)
		})
	}
}

func TestStoreRejectsNegativeScores(t *testing.T) {
	for name, store := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Submit(context.Background(), scores.Entry{Score: -1})
			assert.ErrorIs(t, err, scores.ErrInvalidEntry)

			top, err := store.Top(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, top)
		})
	}
}

func TestStoreKeepsIDs(t *testing.T) {
	id := uuid.New()
	for name, store := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Submit(context.Background(), scores.Entry{ID: id, Score: 10})
			require.NoError(t, err)

			top, err := store.Top(context.Background(), 1)
			require.NoError(t, err)
			require.Len(t, top, 1)
			assert.Equal(t, id, top[0].ID)
			assert.False(t, top[0].PlayedAt.IsZero())
		})
	}
}

func TestSQLitePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	db, err := scores.OpenSQLite(ctx, path, 2)
	require.NoError(t, err)
	_, err = db.Submit(ctx, scores.Entry{Score: 40, Lines: 1, Level: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = scores.OpenSQLite(ctx, path, 2)
	require.NoError(t, err)
	defer db.Close()

	top, err := db.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 40, top[0].Score)
}

func TestMemoryConcurrentSubmit(t *testing.T) {
	store := scores.NewMemory(3)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Submit(context.Background(), scores.Entry{Score: i * 10})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	top, err := store.Top(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{190, 180, 170}, []int{top[0].Score, top[1].Score, top[2].Score})
}

func TestOpen(t *testing.T) {
	store, err := scores.Open(context.Background(), "", 0)
	require.NoError(t, err)
	assert.IsType(t, &scores.Memory{}, store)

	store, err = scores.Open(context.Background(), filepath.Join(t.TempDir(), "s.db"), 0)
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &scores.SQLite{}, store)
}
