package challenge

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	n := 0
	e := NewEngine(func() time.Time { return testNow })
	e.newID = func() string {
		n++
		return fmt.Sprintf("attempt-%d", n)
	}
	return e
}

func completeAll(t *testing.T, e *Engine, s *State) {
	t.Helper()
	for _, task := range AllTasks() {
		if !s.Tasks.Done(task) {
			require.NoError(t, e.ToggleTask(s, task))
		}
	}
}

// stateOnDay returns a started state on day with every earlier day closed.
func stateOnDay(t *testing.T, e *Engine, day int) State {
	t.Helper()
	s := e.Initialize()
	e.EnsureStarted(&s)
	for s.CurrentDay < day {
		completeAll(t, e, &s)
		_, ok := e.EndDay(&s).(DayAdvancedOutcome)
		require.True(t, ok)
	}
	return s
}

func TestEngine_Initialize(t *testing.T) {
	s := newTestEngine().Initialize()

	assert.Equal(t, 1, s.CurrentDay)
	assert.Nil(t, s.StartDate)
	assert.Equal(t, 0, s.Tasks.Completed())
	assert.Empty(t, s.DailyProgress)
	assert.Empty(t, s.Photos)
	assert.Empty(t, s.Attempts)
	assert.NotEmpty(t, s.AttemptID)
}

func TestEngine_EnsureStarted(t *testing.T) {
	e := newTestEngine()

	t.Run("sets start date on day 1", func(t *testing.T) {
		s := e.Initialize()
		assert.True(t, e.EnsureStarted(&s))
		require.NotNil(t, s.StartDate)
		assert.Equal(t, testNow, *s.StartDate)
	})

	t.Run("idempotent", func(t *testing.T) {
		s := e.Initialize()
		e.EnsureStarted(&s)
		first := *s.StartDate

		assert.False(t, e.EnsureStarted(&s))
		assert.Equal(t, first, *s.StartDate)
	})

	t.Run("does not set start date after day 1", func(t *testing.T) {
		s := e.Initialize()
		s.CurrentDay = 4
		e.EnsureStarted(&s)
		assert.Nil(t, s.StartDate)
	})
}

func TestEngine_ToggleTask_DoubleToggle(t *testing.T) {
	e := newTestEngine()

	for _, task := range AllTasks() {
		t.Run(task.String(), func(t *testing.T) {
			s := e.Initialize()
			require.NoError(t, e.ToggleTask(&s, TaskWater))
			before := s.Tasks

			require.NoError(t, e.ToggleTask(&s, task))
			assert.NotEqual(t, before, s.Tasks)
			require.NoError(t, e.ToggleTask(&s, task))
			assert.Equal(t, before, s.Tasks)
		})
	}
}

func TestEngine_ToggleTask_Invalid(t *testing.T) {
	e := newTestEngine()
	s := e.Initialize()

	err := e.ToggleTask(&s, Task(42))

	var invalid *InvalidTaskError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, Checklist{}, s.Tasks)
}

func TestEngine_ToggleTask_LeavesProgressAlone(t *testing.T) {
	e := newTestEngine()
	s := stateOnDay(t, e, 3)

	require.NoError(t, e.ToggleTask(&s, TaskDiet))

	assert.Equal(t, 3, s.CurrentDay)
	assert.Len(t, s.DailyProgress, 2)
}

func TestEngine_EndDay_Incomplete(t *testing.T) {
	e := newTestEngine()
	s := stateOnDay(t, e, 5)
	for _, task := range []Task{TaskDiet, TaskWater, TaskReading} {
		require.NoError(t, e.ToggleTask(&s, task))
	}
	before := s.Clone()

	outcome := e.EndDay(&s)

	incomplete, ok := outcome.(IncompleteDayOutcome)
	require.True(t, ok, "got %T", outcome)
	assert.Equal(t, 5, incomplete.Day)
	assert.Len(t, incomplete.Missing, TaskCount-3)
	assert.Equal(t, before, s)
}

func TestEngine_EndDay_FirstDay(t *testing.T) {
	e := newTestEngine()
	s := e.Initialize()
	e.EnsureStarted(&s)
	completeAll(t, e, &s)

	outcome := e.EndDay(&s)

	assert.Equal(t, DayAdvancedOutcome{ClosedDay: 1, NewDay: 2}, outcome)
	assert.Equal(t, 2, s.CurrentDay)
	assert.Equal(t, Checklist{}, s.Tasks)

	rec, ok := s.DailyProgress[1]
	require.True(t, ok)
	assert.True(t, rec.Completed)
	assert.Equal(t, testNow, rec.ClosedAt)
	assert.True(t, rec.Tasks.AllDone())
}

func TestEngine_EndDay_FinalDay(t *testing.T) {
	e := newTestEngine()
	s := stateOnDay(t, e, TotalDays)
	completeAll(t, e, &s)

	outcome := e.EndDay(&s)

	assert.Equal(t, ChallengeCompletedOutcome{DaysCompleted: TotalDays}, outcome)
	assert.Equal(t, TotalDays, s.CurrentDay)
	assert.True(t, s.DailyProgress[TotalDays].Completed)
	assert.True(t, s.Completed())

	t.Run("ending again is a no-op", func(t *testing.T) {
		before := s.Clone()
		assert.Equal(t, ChallengeCompletedOutcome{DaysCompleted: TotalDays}, e.EndDay(&s))
		assert.Equal(t, before, s)
	})
}

func TestEngine_ForceRestart(t *testing.T) {
	e := newTestEngine()
	s := stateOnDay(t, e, 5)
	require.NoError(t, e.RecordPhoto(&s, 2, NewPhotoRef("image/png", []byte("png"))))
	start := *s.StartDate
	attemptID := s.AttemptID

	rec := e.ForceRestart(&s)

	assert.Equal(t, 1, s.CurrentDay)
	require.Len(t, s.Attempts, 1)
	assert.Equal(t, rec, s.Attempts[0])
	assert.Equal(t, ReasonIncomplete, rec.Reason)
	assert.Equal(t, 4, rec.DaysCompleted)
	assert.Equal(t, attemptID, rec.ID)
	assert.Equal(t, start, *rec.StartDate)
	assert.Equal(t, testNow, rec.EndDate)

	assert.Empty(t, s.DailyProgress)
	assert.Equal(t, Checklist{}, s.Tasks)
	assert.Len(t, s.Photos, 1, "photos survive a forced restart")
	assert.NotEqual(t, attemptID, s.AttemptID)
	require.NotNil(t, s.StartDate)
}

func TestEngine_ResetChallenge(t *testing.T) {
	e := newTestEngine()

	t.Run("day 1 archives nothing", func(t *testing.T) {
		s := e.Initialize()
		e.EnsureStarted(&s)
		require.NoError(t, e.RecordPhoto(&s, 1, NewPhotoRef("image/png", []byte("png"))))

		assert.False(t, ResetRequiresConfirmation(s))
		_, archived := e.ResetChallenge(&s)

		assert.False(t, archived)
		assert.Empty(t, s.Attempts)
		assert.Empty(t, s.Photos)
	})

	t.Run("later day archives reset attempt", func(t *testing.T) {
		s := stateOnDay(t, e, 8)
		require.NoError(t, e.RecordPhoto(&s, 3, NewPhotoRef("image/png", []byte("png"))))

		assert.True(t, ResetRequiresConfirmation(s))
		rec, archived := e.ResetChallenge(&s)

		assert.True(t, archived)
		require.Len(t, s.Attempts, 1)
		assert.Equal(t, ReasonReset, rec.Reason)
		assert.Equal(t, 7, rec.DaysCompleted)
		assert.Equal(t, 1, s.CurrentDay)
		assert.Empty(t, s.DailyProgress)
		assert.Empty(t, s.Photos)
	})
}

func TestEngine_AttemptsGrow(t *testing.T) {
	e := newTestEngine()
	s := stateOnDay(t, e, 3)

	e.ForceRestart(&s)
	for s.CurrentDay < 4 {
		completeAll(t, e, &s)
		e.EndDay(&s)
	}
	e.ResetChallenge(&s)

	require.Len(t, s.Attempts, 2)
	assert.Equal(t, ReasonIncomplete, s.Attempts[0].Reason)
	assert.Equal(t, 2, s.Attempts[0].DaysCompleted)
	assert.Equal(t, ReasonReset, s.Attempts[1].Reason)
	assert.Equal(t, 3, s.Attempts[1].DaysCompleted)
}

func TestEngine_ClearAllData(t *testing.T) {
	e := newTestEngine()
	s := e.ClearAllData()

	assert.Equal(t, 1, s.CurrentDay)
	assert.Nil(t, s.StartDate)
	assert.Empty(t, s.Attempts)
}

func TestEngine_RecordPhoto(t *testing.T) {
	e := newTestEngine()
	ref := NewPhotoRef("image/jpeg", []byte("jpeg"))

	tests := []struct {
		name      string
		day       int
		ref       PhotoRef
		wantErr   error
		wantPhoto bool
	}{
		{name: "current day marks task", day: 3, ref: ref, wantPhoto: true},
		{name: "other day leaves task", day: 2, ref: ref, wantPhoto: false},
		{name: "day zero", day: 0, ref: ref, wantErr: ErrDayOutOfRange},
		{name: "past final day", day: TotalDays + 1, ref: ref, wantErr: ErrDayOutOfRange},
		{name: "empty", day: 3, ref: "", wantErr: ErrEmptyPhoto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateOnDay(t, e, 3)

			err := e.RecordPhoto(&s, tt.day, tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Photos)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.ref, s.Photos[tt.day])
			assert.Equal(t, tt.wantPhoto, s.Tasks.Done(TaskPhoto))
		})
	}

	t.Run("last write wins", func(t *testing.T) {
		s := stateOnDay(t, e, 1)
		second := NewPhotoRef("image/png", []byte("second"))
		require.NoError(t, e.RecordPhoto(&s, 1, ref))
		require.NoError(t, e.RecordPhoto(&s, 1, second))
		assert.Equal(t, second, s.Photos[1])
	})
}
