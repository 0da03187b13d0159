package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hard75/internal/core/notify"
	"github.com/colonyops/hard75/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders toasts stacked vertically, oldest at top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, n := range toasts {
		rendered = append(rendered, renderToast(n))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	var icon string
	var style lipgloss.Style

	switch n.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	return style.Width(toastWidth).Render(icon + " " + n.Message)
}

// Overlay appends the toast stack right-aligned below content.
func (v *ToastView) Overlay(content string, width int) string {
	toasts := v.View()
	if toasts == "" {
		return content
	}
	placed := lipgloss.PlaceHorizontal(max(width, lipgloss.Width(toasts)), lipgloss.Right, toasts)
	return lipgloss.JoinVertical(lipgloss.Left, content, placed)
}
