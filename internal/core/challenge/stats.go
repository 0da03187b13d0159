package challenge

// Statistics are read-only projections of a State. They are recomputed on
// every call and never stored.
type Statistics struct {
	CurrentDay         int `json:"current_day"`
	CompletedDaysCount int `json:"completed_days"`
	RemainingDays      int `json:"remaining_days"`
	CurrentStreak      int `json:"current_streak"`
	TasksCompleted     int `json:"tasks_completed"`
	TaskPercent        int `json:"task_percent"`
	Attempts           int `json:"attempts"`
	BestStreak         int `json:"best_streak"`
}

// ComputeStatistics derives presentation values from s.
func ComputeStatistics(s State) Statistics {
	completed := 0
	for _, rec := range s.DailyProgress {
		if rec.Completed {
			completed++
		}
	}

	streak := s.CurrentDay - 1
	best := streak
	for _, a := range s.Attempts {
		best = max(best, a.DaysCompleted)
	}

	return Statistics{
		CurrentDay:         s.CurrentDay,
		CompletedDaysCount: completed,
		RemainingDays:      TotalDays - s.CurrentDay + 1,
		CurrentStreak:      streak,
		TasksCompleted:     s.Tasks.Completed(),
		TaskPercent:        s.Tasks.Percent(),
		Attempts:           len(s.Attempts),
		BestStreak:         best,
	}
}
