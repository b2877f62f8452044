package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nutrition-tracker/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	store := NewStore(db.SQL)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	runs := []Run{
		{ID: "old", Query: "bread", State: "Aborted", Outcome: "aborted", FailureKind: "no_match", StartedAt: now.AddDate(0, 0, -45)},
		{ID: "mid", Query: "rice", State: "Delivered", Outcome: "completed", ArtifactPath: "logs/nutrition_data_rice.txt", StartedAt: now.Add(-time.Hour), Duration: 1500 * time.Millisecond},
		{ID: "new", Query: "apple", State: "ArtifactSaved", Outcome: "completed_with_warning", Warnings: 1, StartedAt: now},
	}
	for _, r := range runs {
		require.NoError(t, store.Record(ctx, r))
	}

	t.Run("Recent", func(t *testing.T) {
		got, err := store.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "new", got[0].ID)
		assert.Equal(t, 1, got[0].Warnings)
		assert.Equal(t, "mid", got[1].ID)
		assert.Equal(t, 1500*time.Millisecond, got[1].Duration)
		assert.Equal(t, "logs/nutrition_data_rice.txt", got[1].ArtifactPath)
		assert.WithinDuration(t, now, got[0].StartedAt, time.Millisecond)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		assert.Error(t, store.Record(ctx, Run{ID: "new", Query: "x", State: "Idle", Outcome: "aborted"}))
	})

	t.Run("Cleanup", func(t *testing.T) {
		removed, err := store.Cleanup(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		got, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestStore_Empty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	removed, err := store.Cleanup(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
