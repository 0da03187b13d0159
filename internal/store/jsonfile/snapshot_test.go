package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/snapshot"
)

var fixedNow = time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "state.json"))
	store.now = func() time.Time { return fixedNow }
	return store
}

func sampleState() challenge.State {
	start := fixedNow.AddDate(0, 0, -2)
	s := challenge.NewEngine(func() time.Time { return fixedNow }).Initialize()
	s.CurrentDay = 3
	s.StartDate = &start
	s.Tasks[challenge.TaskWater] = true
	s.DailyProgress[1] = challenge.DayRecord{ClosedAt: start, Completed: true}
	s.DailyProgress[2] = challenge.DayRecord{ClosedAt: start.AddDate(0, 0, 1), Completed: true}
	return s
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, challenge.ErrNotFound)
}

func TestSnapshotStore_LoadEmptyFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), nil, 0o644))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, challenge.ErrNotFound)
}

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	want := sampleState()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.CurrentDay, got.CurrentDay)
	assert.Equal(t, want.AttemptID, got.AttemptID)
	assert.True(t, got.Tasks.Done(challenge.TaskWater))
	assert.Len(t, got.DailyProgress, 2)

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSnapshotStore_SaveCreatesDirectory(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "nested", "dir", "state.json"))

	require.NoError(t, store.Save(context.Background(), sampleState()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestSnapshotStore_MalformedIsQuarantined(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, snapshot.ErrMalformed)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "malformed snapshot should be moved aside")

	moved, err := store.Quarantined(ctx)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, store.Path()+".corrupt-20260301-083000", moved[0])

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, challenge.ErrNotFound)

	require.NoError(t, store.Purge(ctx, moved))
	moved, err = store.Quarantined(ctx)
	require.NoError(t, err)
	assert.Empty(t, moved)
}

func TestSnapshotStore_QuarantinedLiteralName(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewSnapshotStore(filepath.Join(dir, "state[1]{a,b}.json"))
	store.now = func() time.Time { return fixedNow }

	// The unescaped pattern would treat [1] and {a,b} as globs and match this.
	decoy := filepath.Join(dir, "state1a.json"+quarantineSuffix+"20260101-000000")
	require.NoError(t, os.WriteFile(decoy, []byte("{}"), 0o644))

	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))
	_, err := store.Load(ctx)
	require.ErrorIs(t, err, snapshot.ErrMalformed)

	moved, err := store.Quarantined(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{store.Path() + ".corrupt-20260301-083000"}, moved)
}

func TestSnapshotStore_PurgeRejectsOtherFiles(t *testing.T) {
	store := newTestStore(t)
	other := filepath.Join(filepath.Dir(store.Path()), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0o644))

	err := store.Purge(context.Background(), []string{other})
	require.Error(t, err)

	_, statErr := os.Stat(other)
	assert.NoError(t, statErr)
}

func TestSnapshotStore_UnsupportedVersionIsKept(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"version":99,"state":{}}`), 0o644))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)

	_, statErr := os.Stat(store.Path())
	assert.NoError(t, statErr, "snapshots from newer versions must not be discarded")
}

func TestSnapshotStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Delete(ctx), "deleting a missing snapshot is not an error")
	require.NoError(t, store.Save(ctx, sampleState()))
	require.NoError(t, store.Delete(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, challenge.ErrNotFound)
}
