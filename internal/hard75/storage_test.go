package hard75

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/config"
	"github.com/colonyops/hard75/internal/core/snapshot"
	"github.com/colonyops/hard75/internal/data/db"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Storage.Backend = backend
	return &cfg
}

func TestOpenStorage_JSON(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendJSON)

	storage, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	assert.Equal(t, config.BackendJSON, storage.Backend)
	assert.DirExists(t, cfg.DataDir)

	_, err = storage.Store.Load(ctx)
	assert.ErrorIs(t, err, challenge.ErrNotFound)

	state := challenge.NewEngine(nil).Initialize()
	require.NoError(t, storage.Store.Save(ctx, state))
	assert.FileExists(t, cfg.StatePath())
}

func TestOpenStorage_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendSQLite)

	storage, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	assert.FileExists(t, filepath.Join(cfg.DataDir, db.FileName))

	state := challenge.NewEngine(nil).Initialize()
	state.CurrentDay = 4
	require.NoError(t, storage.Store.Save(ctx, state))

	loaded, err := storage.Store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.CurrentDay)
}

func TestOpenStorage_SQLiteMigratesJSON(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendSQLite)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))

	state := challenge.NewEngine(nil).Initialize()
	state.CurrentDay = 9
	data, err := snapshot.Encode(state, time.Now())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.StatePath(), data, 0o644))

	storage, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	loaded, err := storage.Store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.CurrentDay)
	assert.NoFileExists(t, cfg.StatePath())
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	cfg := testConfig(t, "postgres")

	_, err := OpenStorage(context.Background(), cfg)
	assert.Error(t, err)
}

func TestStorage_CloseNil(t *testing.T) {
	var storage *Storage
	assert.NoError(t, storage.Close())
}
