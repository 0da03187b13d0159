// Package jsonfile implements challenge.Store over a single JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/snapshot"
)

const quarantineSuffix = ".corrupt-"

// globMeta quotes doublestar metacharacters so a file name matches literally.
var globMeta = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// SnapshotStore persists the challenge snapshot to a JSON file. Writes go to
// a sibling temp file and are renamed into place.
type SnapshotStore struct {
	path string
	now  func() time.Time
	mu   sync.RWMutex
}

var _ challenge.Store = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store backed by the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path, now: time.Now}
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads and decodes the snapshot. A file that fails to decode is renamed
// aside and the returned error wraps snapshot.ErrMalformed.
func (s *SnapshotStore) Load(ctx context.Context) (challenge.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return challenge.State{}, challenge.ErrNotFound
		}
		return challenge.State{}, fmt.Errorf("read snapshot: %w", err)
	}

	if len(data) == 0 {
		return challenge.State{}, challenge.ErrNotFound
	}

	state, _, err := snapshot.Decode(data)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, snapshot.ErrMalformed) {
		return challenge.State{}, err
	}

	dest, qerr := s.quarantine()
	if qerr != nil {
		return challenge.State{}, errors.Join(err, qerr)
	}

	log.Warn().Err(err).Str("moved_to", dest).Msg("discarded malformed snapshot")
	return challenge.State{}, err
}

// Save writes st as a versioned snapshot.
func (s *SnapshotStore) Save(ctx context.Context, st challenge.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := snapshot.Encode(st, s.now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot file. A missing file is not an error.
func (s *SnapshotStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Quarantined lists snapshot files previously moved aside, oldest first.
func (s *SnapshotStore) Quarantined(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.path)
	pattern := globMeta.Replace(filepath.Base(s.path)) + quarantineSuffix + "*"

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("list quarantined snapshots: %w", err)
	}

	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = filepath.Join(dir, m)
	}
	return matches, nil
}

// Purge deletes the named quarantined snapshot files.
func (s *SnapshotStore) Purge(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, name := range names {
		if !strings.HasPrefix(filepath.Base(name), filepath.Base(s.path)+quarantineSuffix) {
			errs = append(errs, fmt.Errorf("%s is not a quarantined snapshot", name))
			continue
		}
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *SnapshotStore) quarantine() (string, error) {
	dest := s.path + quarantineSuffix + s.now().UTC().Format("20060102-150405")
	if err := os.Rename(s.path, dest); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	return dest, nil
}
