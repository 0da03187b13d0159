package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsDir = "migrations"
	upSuffix      = ".up.sql"
	downSuffix    = ".down.sql"
)

// Migration is one versioned schema change with its reverse. The schema
// version of a database is the Version of its newest applied migration,
// stored in PRAGMA user_version.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// loadMigrations reads NNNN_name.up.sql files and their .down.sql partners
// from fsys. Versions must run 1..N without gaps.
func loadMigrations(fsys fs.FS) ([]Migration, error) {
	ups, err := fs.Glob(fsys, path.Join(migrationsDir, "*"+upSuffix))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	downs, err := fs.Glob(fsys, path.Join(migrationsDir, "*"+downSuffix))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(ups) != len(downs) {
		return nil, fmt.Errorf("migration count mismatch: %d up files, %d down files", len(ups), len(downs))
	}

	migrations := make([]Migration, 0, len(ups))
	for _, upPath := range ups {
		base := path.Base(upPath)
		version, name, err := parseFilename(base)
		if err != nil {
			return nil, fmt.Errorf("invalid migration filename %q: %w", base, err)
		}

		up, err := fs.ReadFile(fsys, upPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", base, err)
		}

		downPath := strings.TrimSuffix(upPath, upSuffix) + downSuffix
		down, err := fs.ReadFile(fsys, downPath)
		if err != nil {
			return nil, fmt.Errorf("migration %04d has no down file: %w", version, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(up),
			DownSQL: string(down),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i, m := range migrations {
		if m.Version != i+1 {
			return nil, fmt.Errorf("migration %04d (%s) out of sequence, expected %04d", m.Version, m.Name, i+1)
		}
	}

	return migrations, nil
}

// parseFilename splits "NNNN_name.up.sql" into its version and name.
func parseFilename(filename string) (int, string, error) {
	stem, ok := strings.CutSuffix(filename, upSuffix)
	if !ok {
		return 0, "", fmt.Errorf("expected %s suffix", upSuffix)
	}

	num, name, ok := strings.Cut(stem, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("expected format NNNN_name%s", upSuffix)
	}

	version, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", fmt.Errorf("version %q is not a valid integer: %w", num, err)
	}
	if version <= 0 {
		return 0, "", fmt.Errorf("version must be positive, got %d", version)
	}

	return version, name, nil
}

func schemaVersion(ctx context.Context, conn *sql.DB) (int, error) {
	var v int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrateUp applies every migration newer than the database. A database
// written by a newer build is refused.
func migrateUp(ctx context.Context, conn *sql.DB) error {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return err
	}

	current, err := schemaVersion(ctx, conn)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema %d is newer than this build supports (%d)", current, len(migrations))
	}

	for _, m := range migrations[current:] {
		log.Debug().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")
		if err := step(ctx, conn, m.UpSQL, m.Version); err != nil {
			return fmt.Errorf("migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// MigrateDown reverts the newest n applied migrations.
func MigrateDown(ctx context.Context, conn *sql.DB, n int) error {
	if n <= 0 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return err
	}

	current, err := schemaVersion(ctx, conn)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema %d is newer than this build supports (%d)", current, len(migrations))
	}
	if n > current {
		return fmt.Errorf("requested %d down migrations but only %d are applied", n, current)
	}

	for v := current; v > current-n; v-- {
		m := migrations[v-1]
		log.Debug().Int("version", m.Version).Str("name", m.Name).Msg("reverting migration")
		if err := step(ctx, conn, m.DownSQL, v-1); err != nil {
			return fmt.Errorf("revert migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// step runs stmt and sets the schema version to version in one transaction.
func step(ctx context.Context, conn *sql.DB, stmt string, version int) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	// PRAGMA does not take bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return tx.Commit()
}
