package hard75

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/config"
	"github.com/colonyops/hard75/internal/core/doctor"
	"github.com/colonyops/hard75/internal/data/db"
	"github.com/colonyops/hard75/internal/data/stores"
	"github.com/colonyops/hard75/internal/store/jsonfile"
)

// Storage is the opened persistence backend.
type Storage struct {
	Backend    string
	Store      challenge.Store
	Quarantine doctor.Quarantine

	db *db.DB
}

// Close closes the database for the sqlite backend.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenStorage opens the backend selected by cfg.Storage.Backend. The sqlite
// backend imports an existing json snapshot the first time it opens.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	switch cfg.Storage.Backend {
	case config.BackendJSON:
		store := jsonfile.NewSnapshotStore(cfg.StatePath())
		return &Storage{Backend: cfg.Storage.Backend, Store: store, Quarantine: store}, nil

	case config.BackendSQLite:
		database, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}

		store := stores.NewSnapshotStore(stores.NewKVStore(database))
		if _, err := stores.MigrateFromJSON(ctx, store, cfg.StatePath()); err != nil {
			log.Warn().Err(err).Msg("json snapshot migration skipped")
		}

		return &Storage{Backend: cfg.Storage.Backend, Store: store, Quarantine: store, db: database}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		BusyTimeoutMS: cfg.Database.BusyTimeoutMS,
		MaxOpenConns:  cfg.Database.MaxOpenConns,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log.Warn().Err(err).Msg("database corrupted, moving it aside")
	if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
		return nil, fmt.Errorf("recover database: %w", rerr)
	}
	return db.Open(cfg.DataDir, opts)
}
