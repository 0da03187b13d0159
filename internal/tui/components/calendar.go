package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/styles"
)

// CalendarColumns is the number of day cells per calendar row.
const CalendarColumns = 15

// Calendar renders days as a grid of styled day numbers.
func Calendar(days []challenge.CalendarDay) string {
	rows := make([]string, 0, len(days)/CalendarColumns+1)
	cells := make([]string, 0, CalendarColumns)
	for _, d := range days {
		cells = append(cells, calendarCell(d))
		if len(cells) == CalendarColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CalendarLegend explains the cell colors.
func CalendarLegend() string {
	return fmt.Sprintf("%s current  %s completed  %s incomplete  %s upcoming",
		styles.DayCurrentStyle.UnsetWidth().Render(" "),
		styles.DayCompletedStyle.UnsetWidth().Render(styles.IconCheck),
		styles.DayIncompleteStyle.UnsetWidth().Render(styles.IconCross),
		styles.DayUpcomingStyle.UnsetWidth().Render(styles.IconEmpty),
	)
}

func calendarCell(d challenge.CalendarDay) string {
	label := fmt.Sprint(d.Day)
	switch d.Status {
	case challenge.DayCurrent:
		return styles.DayCurrentStyle.Render(label)
	case challenge.DayCompleted:
		return styles.DayCompletedStyle.Render(label)
	case challenge.DayIncomplete:
		return styles.DayIncompleteStyle.Render(label)
	default:
		return styles.DayUpcomingStyle.Render(label)
	}
}
