package challenge

// DayStatus is the calendar classification of a single day.
// ENUM(current, completed, incomplete, upcoming).
type DayStatus string

const (
	DayCurrent    DayStatus = "current"
	DayCompleted  DayStatus = "completed"
	DayIncomplete DayStatus = "incomplete"
	DayUpcoming   DayStatus = "upcoming"
)

// CalendarDay is one cell of the challenge calendar.
type CalendarDay struct {
	Day      int       `json:"day"`
	Status   DayStatus `json:"status"`
	HasPhoto bool      `json:"has_photo"`
}

// Calendar returns all TotalDays cells for s, in day order.
func Calendar(s State) []CalendarDay {
	finished := s.Completed()
	days := make([]CalendarDay, 0, TotalDays)
	for day := 1; day <= TotalDays; day++ {
		_, hasPhoto := s.Photos[day]
		days = append(days, CalendarDay{
			Day:      day,
			Status:   dayStatus(s, day, finished),
			HasPhoto: hasPhoto,
		})
	}
	return days
}

func dayStatus(s State, day int, finished bool) DayStatus {
	rec, closed := s.DailyProgress[day]
	switch {
	case day == s.CurrentDay && !finished:
		return DayCurrent
	case closed && rec.Completed:
		return DayCompleted
	case day < s.CurrentDay:
		return DayIncomplete
	default:
		return DayUpcoming
	}
}

// AttemptSummary pairs an archived attempt with its chronological number.
type AttemptSummary struct {
	Number  int           `json:"number"`
	Attempt AttemptRecord `json:"attempt"`
}

// History returns archived attempts newest first. Number 1 is the oldest
// attempt. The stored sequence is not modified.
func History(s State) []AttemptSummary {
	out := make([]AttemptSummary, 0, len(s.Attempts))
	for i := len(s.Attempts) - 1; i >= 0; i-- {
		out = append(out, AttemptSummary{Number: i + 1, Attempt: s.Attempts[i]})
	}
	return out
}
