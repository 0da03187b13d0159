package hard75

import (
	"context"

	"github.com/colonyops/hard75/internal/core/config"
	"github.com/colonyops/hard75/internal/core/doctor"
)

// DoctorService runs health checks on the hard75 setup.
type DoctorService struct {
	config  *config.Config
	storage *Storage
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config, storage *Storage) *DoctorService {
	return &DoctorService{
		config:  cfg,
		storage: storage,
	}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewDataDirCheck(d.config.DataDir),
		doctor.NewSnapshotCheck(d.storage.Store, d.storage.Quarantine, autofix),
		doctor.NewTerminalCheck(),
	}
	return doctor.RunAll(ctx, checks)
}
