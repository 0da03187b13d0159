package stores

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/kv"
	"github.com/colonyops/hard75/internal/core/snapshot"
)

// quarantineNamespace holds snapshots that failed to decode.
const quarantineNamespace = "quarantine"

// SnapshotStore implements challenge.Store on top of the kv_store table,
// keeping the snapshot under snapshot.Key.
type SnapshotStore struct {
	kv         *KVStore
	quarantine *kv.TypedKV[string]
	now        func() time.Time
}

var _ challenge.Store = (*SnapshotStore)(nil)

// NewSnapshotStore creates a SQLite-backed snapshot store.
func NewSnapshotStore(store *KVStore) *SnapshotStore {
	return &SnapshotStore{
		kv:         store,
		quarantine: kv.Scoped[string](store, quarantineNamespace),
		now:        time.Now,
	}
}

// Load reads the stored snapshot. A value that fails to decode is moved to
// the quarantine namespace and the returned error wraps snapshot.ErrMalformed.
func (s *SnapshotStore) Load(ctx context.Context) (challenge.State, error) {
	entry, err := s.kv.GetRaw(ctx, snapshot.Key)
	if IsNotFoundError(err) {
		return challenge.State{}, challenge.ErrNotFound
	}
	if err != nil {
		return challenge.State{}, fmt.Errorf("read snapshot: %w", err)
	}

	state, _, err := snapshot.Decode(entry.Value)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, snapshot.ErrMalformed) {
		return challenge.State{}, err
	}

	key := s.now().UTC().Format("20060102T150405.000000000Z")
	if qerr := s.quarantine.Set(ctx, key, string(entry.Value)); qerr != nil {
		return challenge.State{}, errors.Join(err, qerr)
	}
	if derr := s.kv.Delete(ctx, snapshot.Key); derr != nil {
		return challenge.State{}, errors.Join(err, derr)
	}

	log.Warn().Err(err).Str("quarantine_key", key).Msg("discarded malformed snapshot")
	return challenge.State{}, err
}

// Save writes st as a versioned snapshot.
func (s *SnapshotStore) Save(ctx context.Context, st challenge.State) error {
	data, err := snapshot.Encode(st, s.now())
	if err != nil {
		return err
	}
	return s.kv.SetRaw(ctx, snapshot.Key, data)
}

// Delete removes the stored snapshot.
func (s *SnapshotStore) Delete(ctx context.Context) error {
	return s.kv.Delete(ctx, snapshot.Key)
}

// Quarantined lists the keys of snapshots moved aside, oldest first.
func (s *SnapshotStore) Quarantined(ctx context.Context) ([]string, error) {
	return s.quarantine.Keys(ctx)
}

// Purge deletes the given quarantine keys.
func (s *SnapshotStore) Purge(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := s.quarantine.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MigrateFromJSON imports the JSON-file snapshot at jsonPath when the
// database holds no snapshot yet. The file is renamed with a ".migrated"
// suffix afterwards. It reports whether a migration happened.
func MigrateFromJSON(ctx context.Context, store *SnapshotStore, jsonPath string) (bool, error) {
	data, err := os.ReadFile(jsonPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", jsonPath, err)
	}

	has, err := store.kv.Has(ctx, snapshot.Key)
	if err != nil {
		return false, err
	}
	if has {
		return false, nil
	}

	state, format, err := snapshot.Decode(data)
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", jsonPath, err)
	}

	if err := store.Save(ctx, state); err != nil {
		return false, err
	}

	if err := os.Rename(jsonPath, jsonPath+".migrated"); err != nil {
		return true, fmt.Errorf("rename migrated snapshot: %w", err)
	}

	log.Info().Str("from", jsonPath).Str("format", string(format)).Msg("migrated snapshot into database")
	return true, nil
}
