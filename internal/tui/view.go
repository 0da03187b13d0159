package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/styles"
	"github.com/colonyops/hard75/internal/tui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	progressWidth = 20
)

func (m Model) View() string {
	width, height := m.width, m.height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}

	if m.state == stateConfirming {
		return m.modal.Overlay(width, height)
	}

	state := m.svc.State()
	stats := m.svc.Statistics()

	sections := []string{
		m.renderHeader(state, stats, width),
		m.renderTabs(),
		"",
	}

	switch m.tab {
	case tabToday:
		sections = append(sections, m.renderToday(state))
	case tabCalendar:
		sections = append(sections,
			components.Calendar(challenge.Calendar(state)),
			"",
			components.CalendarLegend(),
		)
	case tabHistory:
		sections = append(sections, renderHistory(state))
	case tabPhotos:
		sections = append(sections, renderPhotos(state))
	}

	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.toastView.Overlay(content, width)
}

func (m Model) renderHeader(state challenge.State, stats challenge.Statistics, width int) string {
	title := styles.HeaderStyle.Render(fmt.Sprintf("%s Day %d of %d", styles.IconCalendar, state.CurrentDay, challenge.TotalDays))
	bar := components.ProgressBar(stats.TaskPercent, progressWidth)
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(bar), 2)
	top := title + components.Pad(gap) + bar

	parts := make([]string, 0, 4)
	if state.StartDate != nil {
		parts = append(parts, "started "+humanize.Time(*state.StartDate))
	}
	parts = append(parts,
		fmt.Sprintf("streak %d", stats.CurrentStreak),
		fmt.Sprintf("best %d", stats.BestStreak),
		fmt.Sprintf("attempts %d", stats.Attempts),
	)
	sub := styles.MutedStyle.Render(strings.Join(parts, " · "))

	lines := []string{top, sub}
	if m.svc.Degraded() {
		lines = append(lines, styles.WarningStyle.Render(styles.IconWarning+" storage unavailable, progress is not being saved"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTabs() string {
	out := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			out = append(out, styles.TaskCursorStyle.Render("["+name+"]"))
			continue
		}
		out = append(out, styles.MutedStyle.Render(" "+name+" "))
	}
	return strings.Join(out, " ")
}

func (m Model) renderToday(state challenge.State) string {
	if state.Completed() {
		return styles.SuccessStyle.Render(fmt.Sprintf("%s Challenge complete! Press r to start a new one.", styles.IconTrophy))
	}

	lines := make([]string, 0, challenge.TaskCount+2)
	for i, task := range challenge.AllTasks() {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.TaskCursorStyle.Render("› ")
		}

		style := styles.TaskPendingStyle
		icon := styles.IconEmpty
		if state.Tasks.Done(task) {
			style = styles.TaskDoneStyle
			icon = styles.IconCheck
		}
		lines = append(lines, cursor+style.Render(icon+" "+task.Label()))
	}

	lines = append(lines, "")
	if state.AllTasksComplete() {
		lines = append(lines, styles.SuccessStyle.Render(fmt.Sprintf("All tasks done. Press e to complete day %d %s", state.CurrentDay, styles.IconParty)))
	} else {
		lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("%d/%d tasks complete", state.Tasks.Completed(), challenge.TaskCount)))
	}
	return strings.Join(lines, "\n")
}

func renderHistory(state challenge.State) string {
	history := challenge.History(state)
	if len(history) == 0 {
		return styles.MutedStyle.Render("No previous attempts")
	}

	lines := make([]string, 0, len(history))
	for _, h := range history {
		a := h.Attempt
		start := "?"
		if a.StartDate != nil {
			start = a.StartDate.Local().Format("Jan 2")
		}
		lines = append(lines, fmt.Sprintf("%s  %s → %s  %d/%d days  %s",
			styles.HeaderStyle.Render(fmt.Sprintf("Attempt %d", h.Number)),
			start,
			a.EndDate.Local().Format("Jan 2"),
			a.DaysCompleted, challenge.TotalDays,
			styles.MutedStyle.Render(string(a.Reason)),
		))
	}
	return strings.Join(lines, "\n")
}

func renderPhotos(state challenge.State) string {
	gallery := challenge.Gallery(state)
	if len(gallery) == 0 {
		return styles.MutedStyle.Render("No photos yet. Add one with: hard75 photo <file>")
	}

	lines := make([]string, 0, len(gallery)+2)
	for _, e := range gallery {
		lines = append(lines, fmt.Sprintf("%s Day %-3d %s", styles.IconCamera, e.Day,
			styles.MutedStyle.Render(e.Ref.MIMEType()+", "+humanize.IBytes(uint64(e.Ref.Size())))))
	}

	if before, after, ok := challenge.Comparison(state); ok {
		lines = append(lines, "", fmt.Sprintf("%s Progress: Day %d → Day %d", styles.IconFlex, before.Day, after.Day))
	}
	return strings.Join(lines, "\n")
}
