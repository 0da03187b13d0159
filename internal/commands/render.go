package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/styles"
	"github.com/colonyops/hard75/internal/tui/components"
)

func writeChecklist(w io.Writer, tasks challenge.Checklist) {
	width := 0
	for _, name := range challenge.TaskNames() {
		width = max(width, len(name))
	}

	for _, task := range challenge.AllTasks() {
		icon := styles.TaskPendingStyle.Render(styles.IconEmpty)
		label := styles.TaskPendingStyle.Render(task.Label())
		if tasks.Done(task) {
			icon = styles.TaskDoneStyle.Render(styles.IconCheck)
			label = styles.TaskDoneStyle.Render(task.Label())
		}
		name := styles.MutedStyle.Render(fmt.Sprintf("%-*s", width, task.String()))
		_, _ = fmt.Fprintf(w, "  %s %s  %s\n", icon, name, label)
	}
}

func writeStatus(w io.Writer, state challenge.State, stats challenge.Statistics) {
	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(fmt.Sprintf("%s Day %d of %d", styles.IconCalendar, state.CurrentDay, challenge.TotalDays)))
	if state.StartDate != nil {
		_, _ = fmt.Fprintln(w, styles.MutedStyle.Render(fmt.Sprintf("Started %s (%s)",
			humanize.Time(*state.StartDate), state.StartDate.Local().Format("Jan 2, 2006"))))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Tasks %d/%d %s\n", stats.TasksCompleted, challenge.TaskCount,
		components.ProgressBar(stats.TaskPercent, 20))
	writeChecklist(w, state.Tasks)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		statLabel("streak", stats.CurrentStreak),
		statLabel("best", stats.BestStreak),
		statLabel("remaining", stats.RemainingDays),
		statLabel("attempts", stats.Attempts),
	)
}

func statLabel(name string, v int) string {
	return styles.MutedStyle.Render(name+" ") + fmt.Sprint(v)
}

func writeCalendar(w io.Writer, days []challenge.CalendarDay) {
	_, _ = fmt.Fprintln(w, components.Calendar(days))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, components.CalendarLegend())
}
