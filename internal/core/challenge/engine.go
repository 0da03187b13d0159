package challenge

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine applies challenge transitions to a State. It holds no state of its
// own beyond the clock and id source.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// NewEngine creates an Engine using now as its clock. A nil clock defaults
// to time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now, newID: uuid.NewString}
}

// Initialize returns a fresh state on day 1 with no start date.
func (e *Engine) Initialize() State {
	return State{
		AttemptID:     e.newID(),
		CurrentDay:    1,
		DailyProgress: map[int]DayRecord{},
		Photos:        map[int]PhotoRef{},
		Attempts:      []AttemptRecord{},
	}
}

// EnsureStarted sets the start date when it is missing on day 1. It reports
// whether the state changed.
func (e *Engine) EnsureStarted(s *State) bool {
	changed := false
	if s.AttemptID == "" {
		s.AttemptID = e.newID()
		changed = true
	}
	if s.StartDate == nil && s.CurrentDay == 1 {
		now := e.now().UTC()
		s.StartDate = &now
		changed = true
	}
	return changed
}

// ToggleTask flips the completion flag of t.
func (e *Engine) ToggleTask(s *State, t Task) error {
	if !t.Valid() {
		return &InvalidTaskError{Name: t.String()}
	}
	s.Tasks[t] = !s.Tasks[t]
	return nil
}

// EndDay closes the current day. The state is only modified when every task
// is complete.
func (e *Engine) EndDay(s *State) Outcome {
	if !s.AllTasksComplete() {
		return IncompleteDayOutcome{Day: s.CurrentDay, Missing: s.Tasks.Missing()}
	}

	if s.Completed() {
		return ChallengeCompletedOutcome{DaysCompleted: TotalDays}
	}

	if s.DailyProgress == nil {
		s.DailyProgress = map[int]DayRecord{}
	}
	closed := s.CurrentDay
	s.DailyProgress[closed] = DayRecord{
		ClosedAt:  e.now().UTC(),
		Completed: true,
		Tasks:     s.Tasks,
	}

	if closed >= TotalDays {
		return ChallengeCompletedOutcome{DaysCompleted: TotalDays}
	}

	s.CurrentDay++
	s.Tasks = Checklist{}
	return DayAdvancedOutcome{ClosedDay: closed, NewDay: s.CurrentDay}
}

// ForceRestart archives the running attempt as incomplete and starts over
// from day 1. Photos are kept.
func (e *Engine) ForceRestart(s *State) AttemptRecord {
	rec := e.archive(s, ReasonIncomplete)
	e.restart(s)
	return rec
}

// ResetRequiresConfirmation reports whether resetting would discard progress.
func ResetRequiresConfirmation(s State) bool {
	return s.CurrentDay > 1
}

// ResetChallenge starts a new attempt from day 1 and clears photos. The
// running attempt is archived with ReasonReset when it had progress; the
// returned bool reports whether a record was archived.
func (e *Engine) ResetChallenge(s *State) (AttemptRecord, bool) {
	var (
		rec      AttemptRecord
		archived bool
	)
	if ResetRequiresConfirmation(*s) {
		rec = e.archive(s, ReasonReset)
		archived = true
	}

	e.restart(s)
	s.Photos = map[int]PhotoRef{}
	return rec, archived
}

// ClearAllData returns a fresh state. Deleting the stored snapshot is the
// caller's responsibility.
func (e *Engine) ClearAllData() State {
	return e.Initialize()
}

// RecordPhoto stores ref for day, replacing any existing photo. When day is
// the current day the photo task is marked complete.
func (e *Engine) RecordPhoto(s *State, day int, ref PhotoRef) error {
	if day < 1 || day > TotalDays {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	if ref == "" {
		return ErrEmptyPhoto
	}

	if s.Photos == nil {
		s.Photos = map[int]PhotoRef{}
	}
	s.Photos[day] = ref
	if day == s.CurrentDay {
		s.Tasks[TaskPhoto] = true
	}
	return nil
}

func (e *Engine) archive(s *State, reason Reason) AttemptRecord {
	id := s.AttemptID
	if id == "" {
		id = e.newID()
	}

	rec := AttemptRecord{
		ID:            id,
		StartDate:     cloneTime(s.StartDate),
		EndDate:       e.now().UTC(),
		DaysCompleted: s.CurrentDay - 1,
		Reason:        reason,
	}
	s.Attempts = append(s.Attempts, rec)
	return rec
}

func (e *Engine) restart(s *State) {
	now := e.now().UTC()
	s.AttemptID = e.newID()
	s.CurrentDay = 1
	s.StartDate = &now
	s.DailyProgress = map[int]DayRecord{}
	s.Tasks = Checklist{}
}
