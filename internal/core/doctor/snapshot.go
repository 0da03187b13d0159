package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/snapshot"
)

// Quarantine lists and removes snapshots a store moved aside.
type Quarantine interface {
	Quarantined(ctx context.Context) ([]string, error)
	Purge(ctx context.Context, names []string) error
}

// SnapshotCheck verifies the stored snapshot decodes and reports leftover
// quarantined snapshots. With autofix, quarantined snapshots are removed.
type SnapshotCheck struct {
	store      challenge.Store
	quarantine Quarantine
	autofix    bool
}

// NewSnapshotCheck creates a snapshot check. quarantine may be nil.
func NewSnapshotCheck(store challenge.Store, quarantine Quarantine, autofix bool) *SnapshotCheck {
	return &SnapshotCheck{store: store, quarantine: quarantine, autofix: autofix}
}

func (c *SnapshotCheck) Name() string {
	return "Snapshot"
}

func (c *SnapshotCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	result.Items = append(result.Items, c.checkCurrent(ctx))

	if c.quarantine != nil {
		result.Items = append(result.Items, c.checkQuarantine(ctx))
	}
	return result
}

func (c *SnapshotCheck) checkCurrent(ctx context.Context) CheckItem {
	item := CheckItem{Label: "current snapshot"}

	state, err := c.store.Load(ctx)
	switch {
	case errors.Is(err, challenge.ErrNotFound):
		item.Status = StatusPass
		item.Detail = "nothing saved yet"
	case errors.Is(err, snapshot.ErrMalformed):
		item.Status = StatusWarn
		item.Detail = fmt.Sprintf("malformed snapshot moved aside: %v", err)
	case errors.Is(err, snapshot.ErrUnsupportedVersion):
		item.Status = StatusFail
		item.Detail = "written by a newer version of hard75"
	case err != nil:
		item.Status = StatusFail
		item.Detail = err.Error()
	default:
		item.Status = StatusPass
		item.Detail = fmt.Sprintf("day %d of %d, %d attempts", state.CurrentDay, challenge.TotalDays, len(state.Attempts))
	}
	return item
}

func (c *SnapshotCheck) checkQuarantine(ctx context.Context) CheckItem {
	item := CheckItem{Label: "quarantined snapshots"}

	names, err := c.quarantine.Quarantined(ctx)
	if err != nil {
		item.Status = StatusFail
		item.Detail = err.Error()
		return item
	}

	if len(names) == 0 {
		item.Status = StatusPass
		item.Detail = "none"
		return item
	}

	if c.autofix {
		if err := c.quarantine.Purge(ctx, names); err != nil {
			item.Status = StatusFail
			item.Detail = fmt.Sprintf("purge failed: %v", err)
			return item
		}
		item.Status = StatusPass
		item.Detail = fmt.Sprintf("removed %d", len(names))
		return item
	}

	item.Status = StatusWarn
	item.Detail = fmt.Sprintf("%d found (run with --fix to remove)", len(names))
	item.Fixable = true
	return item
}
