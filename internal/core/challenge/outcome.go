package challenge

// Outcome is the result of EndDay. It is one of IncompleteDayOutcome,
// DayAdvancedOutcome or ChallengeCompletedOutcome.
type Outcome interface {
	outcome()
}

// IncompleteDayOutcome is returned when EndDay is called before every task
// is complete. The state is left untouched; the caller must confirm with
// ForceRestart to give up the attempt.
type IncompleteDayOutcome struct {
	Day     int
	Missing []Task
}

// DayAdvancedOutcome is returned when a day is closed and the next one begins.
type DayAdvancedOutcome struct {
	ClosedDay int
	NewDay    int
}

// ChallengeCompletedOutcome is returned when the final day is closed.
type ChallengeCompletedOutcome struct {
	DaysCompleted int
}

func (IncompleteDayOutcome) outcome()      {}
func (DayAdvancedOutcome) outcome()        {}
func (ChallengeCompletedOutcome) outcome() {}
