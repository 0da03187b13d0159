// Package challenge defines the 75 day challenge state and the transition
// logic that operates on it.
package challenge

import (
	"maps"
	"slices"
	"time"
)

// TotalDays is the length of a challenge attempt.
const TotalDays = 75

// Reason describes why an attempt was archived.
// ENUM(incomplete, reset).
type Reason string

const (
	ReasonIncomplete Reason = "incomplete"
	ReasonReset      Reason = "reset"
)

// DayRecord is written when a day is closed with every task complete.
type DayRecord struct {
	ClosedAt  time.Time `json:"closedAt"`
	Completed bool      `json:"completed"`
	Tasks     Checklist `json:"taskSnapshot"`
}

// AttemptRecord is an archived attempt.
type AttemptRecord struct {
	ID            string     `json:"id,omitempty"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	DaysCompleted int        `json:"daysCompleted"`
	Reason        Reason     `json:"reason"`
}

// State is the durable snapshot of a challenge. It is owned by a single
// controller; readers receive copies from Clone.
type State struct {
	// AttemptID identifies the running attempt and is carried into its
	// AttemptRecord when archived.
	AttemptID     string            `json:"attemptId,omitempty"`
	CurrentDay    int               `json:"currentDay"`
	StartDate     *time.Time        `json:"startDate"`
	Tasks         Checklist         `json:"tasks"`
	DailyProgress map[int]DayRecord `json:"dailyProgress"`
	Photos        map[int]PhotoRef  `json:"photos"`
	Attempts      []AttemptRecord   `json:"attempts"`
}

// AllTasksComplete reports whether every task of the current day is done.
func (s State) AllTasksComplete() bool {
	return s.Tasks.AllDone()
}

// Completed reports whether the final day has been closed.
func (s State) Completed() bool {
	if s.CurrentDay != TotalDays {
		return false
	}
	rec, ok := s.DailyProgress[TotalDays]
	return ok && rec.Completed
}

// Started reports whether the attempt has a start date.
func (s State) Started() bool {
	return s.StartDate != nil
}

// Photo returns the photo stored for day, if any.
func (s State) Photo(day int) (PhotoRef, bool) {
	ref, ok := s.Photos[day]
	return ref, ok
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.StartDate = cloneTime(s.StartDate)
	out.DailyProgress = maps.Clone(s.DailyProgress)
	out.Photos = maps.Clone(s.Photos)
	out.Attempts = slices.Clone(s.Attempts)
	for i := range out.Attempts {
		out.Attempts[i].StartDate = cloneTime(out.Attempts[i].StartDate)
	}

	if out.DailyProgress == nil {
		out.DailyProgress = map[int]DayRecord{}
	}
	if out.Photos == nil {
		out.Photos = map[int]PhotoRef{}
	}
	if out.Attempts == nil {
		out.Attempts = []AttemptRecord{}
	}
	return out
}

// Normalize fills nil collections and clamps CurrentDay into range so a
// decoded snapshot satisfies the state invariants.
func (s *State) Normalize() {
	if s.DailyProgress == nil {
		s.DailyProgress = map[int]DayRecord{}
	}
	if s.Photos == nil {
		s.Photos = map[int]PhotoRef{}
	}
	if s.Attempts == nil {
		s.Attempts = []AttemptRecord{}
	}
	s.CurrentDay = max(1, min(s.CurrentDay, TotalDays))

	for day := range s.DailyProgress {
		if day < 1 || day > s.CurrentDay || (day == s.CurrentDay && day != TotalDays) {
			delete(s.DailyProgress, day)
		}
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
