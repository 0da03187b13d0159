package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func openRawConn(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), FileName)
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", dbPath))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func embeddedMigrations(t *testing.T) []Migration {
	t.Helper()
	migrations, err := loadMigrations(migrationsFS)
	require.NoError(t, err)
	return migrations
}

func TestMigrateUp_FreshDB(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	v, err := schemaVersion(ctx, database.Conn())
	require.NoError(t, err)
	assert.Equal(t, len(embeddedMigrations(t)), v)

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM kv_store LIMIT 0")
	require.NoError(t, err, "kv_store table should exist")

	var tables int
	err = database.Conn().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_migrations'",
	).Scan(&tables)
	require.NoError(t, err)
	assert.Zero(t, tables, "version lives in user_version, not a bookkeeping table")
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, migrateUp(ctx, database.Conn()))

	v, err := schemaVersion(ctx, database.Conn())
	require.NoError(t, err)
	assert.Equal(t, len(embeddedMigrations(t)), v)
}

func TestMigrateUp_ResumesFromPartialSchema(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	conn := database.Conn()

	require.NoError(t, MigrateDown(ctx, conn, 1))
	v, err := schemaVersion(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, len(embeddedMigrations(t))-1, v)

	require.NoError(t, migrateUp(ctx, conn))

	var indexes int
	err = conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_kv_store_updated_at'",
	).Scan(&indexes)
	require.NoError(t, err)
	assert.Equal(t, 1, indexes)
}

func TestMigrateUp_RejectsNewerSchema(t *testing.T) {
	conn := openRawConn(t)
	ctx := context.Background()

	future := len(embeddedMigrations(t)) + 1
	_, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", future))
	require.NoError(t, err)

	err = migrateUp(ctx, conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than this build")

	_, err = conn.ExecContext(ctx, "SELECT 1 FROM kv_store LIMIT 0")
	assert.Error(t, err, "nothing should be applied to a newer schema")
}

func TestMigrateDown(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	conn := database.Conn()

	_, err := conn.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, created_at, updated_at)
		VALUES ('75hard-state', '{}', 1, 1)
	`)
	require.NoError(t, err)

	// Revert the last migration (updated_at index).
	require.NoError(t, MigrateDown(ctx, conn, 1))

	var indexes int
	err = conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_kv_store_updated_at'",
	).Scan(&indexes)
	require.NoError(t, err)
	assert.Equal(t, 0, indexes, "index should be dropped")

	var count int
	err = conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "kv row should be preserved")

	// Reverting the table itself removes it.
	require.NoError(t, MigrateDown(ctx, conn, 1))
	_, err = conn.ExecContext(ctx, "SELECT 1 FROM kv_store LIMIT 0")
	require.Error(t, err, "kv_store should not exist after down migration")

	v, err := schemaVersion(ctx, conn)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestMigrateDown_InvalidN(t *testing.T) {
	conn := openRawConn(t)
	ctx := context.Background()

	require.Error(t, MigrateDown(ctx, conn, 0), "n=0 should fail")
	require.Error(t, MigrateDown(ctx, conn, -1), "n=-1 should fail")
}

func TestMigrateDown_TooMany(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	err := MigrateDown(ctx, database.Conn(), len(embeddedMigrations(t))+1)
	assert.Error(t, err, "requesting more down migrations than applied should fail")

	v, err := schemaVersion(ctx, database.Conn())
	require.NoError(t, err)
	assert.Equal(t, len(embeddedMigrations(t)), v, "a refused revert leaves the schema alone")
}

func TestLoadMigrations_Embedded(t *testing.T) {
	migrations := embeddedMigrations(t)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.UpSQL, "migration %d up SQL should not be empty", m.Version)
		assert.NotEmpty(t, m.DownSQL, "migration %d down SQL should not be empty", m.Version)
		assert.NotEmpty(t, m.Name, "migration %d name should not be empty", m.Version)
	}
}

func TestLoadMigrations_Invalid(t *testing.T) {
	sqlFile := func(body string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(body)} }

	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{
			name: "gap in versions",
			fsys: fstest.MapFS{
				"migrations/0001_a.up.sql":   sqlFile("SELECT 1"),
				"migrations/0001_a.down.sql": sqlFile("SELECT 1"),
				"migrations/0003_c.up.sql":   sqlFile("SELECT 1"),
				"migrations/0003_c.down.sql": sqlFile("SELECT 1"),
			},
			wantErr: "out of sequence",
		},
		{
			name: "missing down file",
			fsys: fstest.MapFS{
				"migrations/0001_a.up.sql": sqlFile("SELECT 1"),
			},
			wantErr: "count mismatch",
		},
		{
			name: "down file under another name",
			fsys: fstest.MapFS{
				"migrations/0001_a.up.sql":   sqlFile("SELECT 1"),
				"migrations/0001_b.down.sql": sqlFile("SELECT 1"),
			},
			wantErr: "no down file",
		},
		{
			name: "bad filename",
			fsys: fstest.MapFS{
				"migrations/first_a.up.sql":   sqlFile("SELECT 1"),
				"migrations/first_a.down.sql": sqlFile("SELECT 1"),
			},
			wantErr: "invalid migration filename",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMigrations(tt.fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion int
		wantName    string
		wantErr     bool
	}{
		{"0001_kv_store.up.sql", 1, "kv_store", false},
		{"0002_kv_updated_index.up.sql", 2, "kv_updated_index", false},
		{"0100_big_version.up.sql", 100, "big_version", false},
		{"0001_kv_store.down.sql", 0, "", true},
		{"bad.sql", 0, "", true},
		{"0001_initial.sql", 0, "", true},
		{"0000_zero.up.sql", 0, "", true},
		{"-1_negative.up.sql", 0, "", true},
		{"abc_notnumber.up.sql", 0, "", true},
		{"0001_.up.sql", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, err := parseFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestOpen_AppliesDefaults(t *testing.T) {
	database, err := Open(t.TempDir(), OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	assert.Equal(t, 1, database.Conn().Stats().MaxOpenConnections)
}

func TestQueries_KVRoundTrip(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	q := database.Queries()

	require.NoError(t, q.KVSet(ctx, KVSetParams{Key: "a", Value: []byte(`1`), CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, q.KVSet(ctx, KVSetParams{Key: "a", Value: []byte(`2`), CreatedAt: 5, UpdatedAt: 5}))

	row, err := q.KVGet(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), row.Value)
	assert.Equal(t, int64(1), row.CreatedAt, "created_at is kept on update")
	assert.Equal(t, int64(5), row.UpdatedAt)

	require.NoError(t, q.KVDelete(ctx, "a"))
	_, err = q.KVGet(ctx, "a")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestQueries_KVListPrefix(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	q := database.Queries()

	for _, key := range []string{"quarantine:2", "quarantine:1", "other"} {
		require.NoError(t, q.KVSet(ctx, KVSetParams{Key: key, Value: []byte(`""`), CreatedAt: 1, UpdatedAt: 1}))
	}

	rows, err := q.KVListPrefix(ctx, "quarantine:")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "quarantine:1", rows[0].Key)
	assert.Equal(t, "quarantine:2", rows[1].Key)
}

func TestWithTx_Rollback(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	err := database.WithTx(ctx, func(q *Queries) error {
		if err := q.KVSet(ctx, KVSetParams{Key: "tx", Value: []byte(`1`), CreatedAt: 1, UpdatedAt: 1}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	count, err := database.Queries().KVHas(ctx, "tx")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
