package challenge

import "context"

// Store persists the whole State as a single snapshot.
// Load returns ErrNotFound when nothing has been saved yet. A stored
// snapshot that cannot be decoded is moved aside by the store and reported
// with an error wrapping snapshot.ErrMalformed.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
	Delete(ctx context.Context) error
}
