// Package hard75 wires the challenge engine to storage and events and exposes
// the operations used by the CLI and TUI.
package hard75

import (
	"github.com/colonyops/hard75/internal/core/config"
	"github.com/colonyops/hard75/internal/core/eventbus"
	"github.com/colonyops/hard75/internal/core/logging"
)

// App is the central entry point for all hard75 operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Challenge *ChallengeService
	Doctor    *DoctorService

	Bus     *eventbus.EventBus
	Config  *config.Config
	Storage *Storage
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, storage *Storage, bus *eventbus.EventBus) *App {
	return &App{
		Challenge: NewChallengeService(storage.Store, bus, logging.Component("challenge"), nil),
		Doctor:    NewDoctorService(cfg, storage),
		Bus:       bus,
		Config:    cfg,
		Storage:   storage,
	}
}

// Close releases storage resources.
func (a *App) Close() error {
	if a == nil || a.Storage == nil {
		return nil
	}
	return a.Storage.Close()
}
