package hard75

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/eventbus"
	"github.com/colonyops/hard75/internal/core/logging"
	"github.com/colonyops/hard75/internal/core/snapshot"
)

// ChallengeService owns the authoritative challenge state. Every operation
// runs under one mutex, applies the engine transition, publishes the domain
// events and persists the snapshot.
type ChallengeService struct {
	store  challenge.Store
	engine *challenge.Engine
	bus    *eventbus.EventBus
	log    zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    challenge.State
	phase    *challenge.PhaseMachine
	degraded bool
}

// NewChallengeService creates a service over store. A nil clock defaults to
// time.Now. Call Load before any other operation.
func NewChallengeService(store challenge.Store, bus *eventbus.EventBus, log zerolog.Logger, now func() time.Time) *ChallengeService {
	if now == nil {
		now = time.Now
	}
	return &ChallengeService{
		store:  store,
		engine: challenge.NewEngine(now),
		bus:    bus,
		log:    log,
		now:    now,
	}
}

// Load reads the stored snapshot. A missing or malformed snapshot starts a
// fresh challenge. Any other read error also starts fresh but puts the
// service in degraded mode, where nothing is written back; the returned error
// then wraps ErrNotSaved.
func (s *ChallengeService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.degraded = false

	state, err := s.store.Load(ctx)
	var loadErr error
	switch {
	case err == nil:
	case errors.Is(err, challenge.ErrNotFound):
		state = s.engine.Initialize()
	case errors.Is(err, snapshot.ErrMalformed):
		s.log.Warn().Err(err).Msg("starting fresh after malformed snapshot")
		state = s.engine.Initialize()
	default:
		s.log.Warn().Err(err).Msg("snapshot unreadable, running without persistence")
		state = s.engine.Initialize()
		s.degraded = true
		loadErr = fmt.Errorf("load: %w: %w", ErrNotSaved, err)
	}

	s.state = state
	if err := s.resetPhase(); err != nil {
		return err
	}

	if s.engine.EnsureStarted(&s.state) && !s.degraded {
		if err := s.persist(ctx, "load"); err != nil {
			return err
		}
	}

	return loadErr
}

// ToggleTask flips task and returns its new completion flag.
func (s *ChallengeService) ToggleTask(ctx context.Context, task challenge.Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardEditable(); err != nil {
		return false, err
	}

	if err := s.engine.ToggleTask(&s.state, task); err != nil {
		s.log.Error().Err(err).Msg("toggle rejected")
		return false, err
	}

	done := s.state.Tasks.Done(task)
	s.debug(ctx).Stringer("task", task).Bool("done", done).Msg("task toggled")
	s.bus.PublishTaskToggled(eventbus.TaskToggledPayload{Day: s.state.CurrentDay, Task: task, Done: done})

	return done, s.persist(ctx, "toggle_task")
}

// EndDay closes the current day. An incomplete day changes nothing and
// leaves a restart confirmation pending.
func (s *ChallengeService) EndDay(ctx context.Context) (challenge.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.Pending() {
		return nil, ErrConfirmationPending
	}

	wasComplete := s.state.Completed()
	outcome := s.engine.EndDay(&s.state)

	switch o := outcome.(type) {
	case challenge.IncompleteDayOutcome:
		if err := s.phase.Send(challenge.EventIncomplete); err != nil {
			return nil, err
		}
		s.debug(ctx).Int("missing", len(o.Missing)).Msg("end day refused")
		s.bus.PublishDayIncomplete(eventbus.DayIncompletePayload{Day: o.Day, Missing: o.Missing})
		return o, nil

	case challenge.DayAdvancedOutcome:
		s.debug(ctx).Int("closed_day", o.ClosedDay).Msg("day advanced")
		s.bus.PublishDayAdvanced(eventbus.DayAdvancedPayload{ClosedDay: o.ClosedDay, NewDay: o.NewDay})
		return o, s.persist(ctx, "end_day")

	case challenge.ChallengeCompletedOutcome:
		if wasComplete {
			return o, nil
		}
		if err := s.phase.Send(challenge.EventFinish); err != nil {
			return nil, err
		}
		s.debug(ctx).Msg("challenge completed")
		s.bus.PublishChallengeCompleted(eventbus.ChallengeCompletedPayload{
			AttemptID:     s.state.AttemptID,
			DaysCompleted: o.DaysCompleted,
		})
		return o, s.persist(ctx, "end_day")
	}

	return outcome, nil
}

// ForceRestart confirms the restart offered after an incomplete day.
func (s *ChallengeService) ForceRestart(ctx context.Context) (challenge.AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.Current() != challenge.PhaseAwaitingRestart {
		return challenge.AttemptRecord{}, ErrNoPendingConfirmation
	}

	rec := s.engine.ForceRestart(&s.state)
	if err := s.phase.Send(challenge.EventConfirm); err != nil {
		return challenge.AttemptRecord{}, err
	}

	s.debug(ctx).Int("days_completed", rec.DaysCompleted).Msg("challenge restarted")
	s.bus.PublishAttemptArchived(eventbus.AttemptArchivedPayload{Attempt: rec})
	s.bus.PublishChallengeReset(eventbus.ChallengeResetPayload{
		Reason:    challenge.ReasonIncomplete,
		AttemptID: s.state.AttemptID,
	})

	return rec, s.persist(ctx, "force_restart")
}

// RequestReset starts a new challenge. It reports true when the running
// attempt has progress and ConfirmReset must follow; on day 1 the reset
// happens immediately.
func (s *ChallengeService) RequestReset(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.Pending() {
		return false, ErrConfirmationPending
	}

	if !challenge.ResetRequiresConfirmation(s.state) {
		_, _, err := s.reset(ctx)
		return false, err
	}

	if err := s.phase.Send(challenge.EventRequestReset); err != nil {
		return false, err
	}
	return true, nil
}

// ConfirmReset performs a reset previously requested with RequestReset. The
// returned bool reports whether an attempt was archived.
func (s *ChallengeService) ConfirmReset(ctx context.Context) (challenge.AttemptRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.Current() != challenge.PhaseAwaitingReset {
		return challenge.AttemptRecord{}, false, ErrNoPendingConfirmation
	}
	return s.reset(ctx)
}

// Cancel drops any pending confirmation. It reports whether one was pending.
func (s *ChallengeService) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.phase.Pending()
	if err := s.resetPhase(); err != nil {
		s.log.Error().Err(err).Msg("rebuild phase")
	}
	return pending
}

// ClearAllData deletes the stored snapshot and all in-memory progress, then
// starts and saves a fresh attempt.
func (s *ChallengeService) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.engine.ClearAllData()
	s.engine.EnsureStarted(&s.state)
	if err := s.resetPhase(); err != nil {
		return err
	}

	s.debug(ctx).Msg("all data cleared")
	s.bus.PublishChallengeCleared(eventbus.ChallengeClearedPayload{})

	if s.degraded {
		return fmt.Errorf("clear: %w: storage unavailable", ErrNotSaved)
	}
	if err := s.store.Delete(ctx); err != nil {
		return s.persistFailed("clear", err)
	}
	return s.persist(ctx, "clear")
}

// RecordPhoto stores ref as the progress photo of day.
func (s *ChallengeService) RecordPhoto(ctx context.Context, day int, ref challenge.PhotoRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardEditable(); err != nil {
		return err
	}

	if err := s.engine.RecordPhoto(&s.state, day, ref); err != nil {
		return err
	}

	s.debug(ctx).Int("photo_day", day).Int("bytes", ref.Size()).Msg("photo recorded")
	s.bus.PublishPhotoRecorded(eventbus.PhotoRecordedPayload{Day: day, Size: ref.Size()})

	return s.persist(ctx, "record_photo")
}

// Import replaces the current state with a decoded snapshot document or a
// legacy browser snapshot.
func (s *ChallengeService) Import(ctx context.Context, data []byte) (snapshot.Format, error) {
	state, format, err := snapshot.Decode(data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.engine.EnsureStarted(&s.state)
	if err := s.resetPhase(); err != nil {
		return "", err
	}

	s.debug(ctx).Str("format", string(format)).Msg("snapshot imported")
	return format, s.persist(ctx, "import")
}

// Export encodes the current state as a versioned snapshot document.
func (s *ChallengeService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Encode(s.state, s.now())
}

// State returns a copy of the current state.
func (s *ChallengeService) State() challenge.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Statistics summarizes the current state.
func (s *ChallengeService) Statistics() challenge.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return challenge.ComputeStatistics(s.state)
}

// Phase returns the current confirmation phase.
func (s *ChallengeService) Phase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase.Current()
}

// Degraded reports whether persistence is disabled after a read failure.
func (s *ChallengeService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *ChallengeService) reset(ctx context.Context) (challenge.AttemptRecord, bool, error) {
	rec, archived := s.engine.ResetChallenge(&s.state)
	if err := s.resetPhase(); err != nil {
		return challenge.AttemptRecord{}, false, err
	}

	s.debug(ctx).Bool("archived", archived).Msg("challenge reset")
	if archived {
		s.bus.PublishAttemptArchived(eventbus.AttemptArchivedPayload{Attempt: rec})
	}
	s.bus.PublishChallengeReset(eventbus.ChallengeResetPayload{
		Reason:    challenge.ReasonReset,
		AttemptID: s.state.AttemptID,
	})

	return rec, archived, s.persist(ctx, "reset")
}

func (s *ChallengeService) guardEditable() error {
	if s.phase.Pending() {
		return ErrConfirmationPending
	}
	if s.state.Completed() {
		return ErrChallengeComplete
	}
	return nil
}

func (s *ChallengeService) resetPhase() error {
	phase, err := challenge.NewPhaseMachine(s.state)
	if err != nil {
		return err
	}
	s.phase = phase
	return nil
}

func (s *ChallengeService) persist(ctx context.Context, op string) error {
	if s.degraded {
		return fmt.Errorf("%s: %w: storage unavailable", op, ErrNotSaved)
	}
	if err := s.store.Save(ctx, s.state); err != nil {
		return s.persistFailed(op, err)
	}
	return nil
}

func (s *ChallengeService) persistFailed(op string, err error) error {
	s.log.Warn().Err(err).Str("op", op).Msg("persist failed")
	s.bus.PublishPersistFailed(eventbus.PersistFailedPayload{Op: op, Err: err})
	return fmt.Errorf("%s: %w: %w", op, ErrNotSaved, err)
}

func (s *ChallengeService) debug(ctx context.Context) *zerolog.Event {
	ctx = logging.WithChallenge(ctx, s.state.AttemptID, s.state.CurrentDay)
	return s.log.Debug().Ctx(ctx)
}
