// Package components provides reusable rendering pieces shared by the TUI
// and the CLI.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hard75/internal/core/styles"
	"github.com/colonyops/hard75/internal/hard75"
)

// ConfirmModal is a yes/no confirmation dialog.
type ConfirmModal struct {
	prompt    hard75.Prompt
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a new confirmation modal.
func NewConfirmModal(prompt hard75.Prompt) ConfirmModal {
	return ConfirmModal{prompt: prompt}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc", "q":
		m.cancelled = true
	}
	return m, nil
}

// View renders the modal box.
func (m ConfirmModal) View(width int) string {
	boxWidth := min(max(width-8, 30), 64)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.prompt.Title),
		lipgloss.NewStyle().Width(boxWidth-6).Render(m.prompt.Message),
		styles.ModalHelpStyle.Render("y "+m.prompt.Confirm+Pad(3)+"n cancel"),
	)
	return styles.ModalStyle.Width(boxWidth).Render(content)
}

// Overlay centers the modal on a screen of the given size.
func (m ConfirmModal) Overlay(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View(width))
}

// Prompt returns the prompt shown by the modal.
func (m ConfirmModal) Prompt() hard75.Prompt {
	return m.prompt
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}
