// Package tui implements the interactive daily checklist.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/eventbus"
	"github.com/colonyops/hard75/internal/core/notify"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/tui/components"
)

// UIState is the input mode of the model.
type UIState int

const (
	stateNormal UIState = iota
	stateConfirming
)

type modalKind int

const (
	modalRestart modalKind = iota + 1
	modalReset
	modalClear
	modalComplete
)

var modalPrompts = map[modalKind]hard75.Prompt{
	modalRestart:  hard75.PromptIncompleteDay,
	modalReset:    hard75.PromptResetChallenge,
	modalClear:    hard75.PromptClearData,
	modalComplete: hard75.PromptChallengeComplete,
}

type tab int

const (
	tabToday tab = iota
	tabCalendar
	tabHistory
	tabPhotos

	tabCount
)

var tabNames = [tabCount]string{"Today", "Calendar", "History", "Photos"}

// Deps holds the services the TUI operates on.
type Deps struct {
	Challenge *hard75.ChallengeService
	Bus       *eventbus.EventBus
}

// Model is the bubbletea model of the checklist UI.
type Model struct {
	ctx   context.Context
	svc   *hard75.ChallengeService
	keys  keyMap
	help  help.Model
	now   func() time.Time
	state UIState

	modal     components.ConfirmModal
	modalKind modalKind

	notifications *NotificationBuffer
	toasts        *ToastController
	toastView     *ToastView

	cursor int
	tab    tab
	width  int
	height int
}

// New creates the model and subscribes it to bus notifications.
func New(ctx context.Context, deps Deps) Model {
	buffer := NewNotificationBuffer()
	if deps.Bus != nil {
		deps.Bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
			buffer.Push(notify.Notification{Level: p.Level, Message: p.Message})
		})
	}

	toasts := NewToastController()
	return Model{
		ctx:           ctx,
		svc:           deps.Challenge,
		keys:          defaultKeyMap(),
		help:          help.New(),
		now:           time.Now,
		notifications: buffer,
		toasts:        toasts,
		toastView:     NewToastView(toasts),
	}
}

func (m Model) Init() tea.Cmd {
	return m.notifications.WaitForSignal()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case drainNotificationsMsg:
		for _, n := range m.notifications.Drain() {
			m.toasts.Push(n)
		}
		return m, tea.Batch(m.notifications.WaitForSignal(), m.startToastTick())

	case toastTickMsg:
		m.toasts.Tick(time.Time(msg))
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case tea.KeyMsg:
		if m.state == stateConfirming {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissAll()

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount

	case key.Matches(msg, m.keys.Up):
		if m.tab == tabToday && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.tab == tabToday && m.cursor < challenge.TaskCount-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.tab != tabToday {
			return m, nil
		}
		_, err := m.svc.ToggleTask(m.ctx, challenge.AllTasks()[m.cursor])
		return m, m.handleErr(err)

	case key.Matches(msg, m.keys.EndDay):
		return m.endDay()

	case key.Matches(msg, m.keys.Reset):
		return m.requestReset()

	case key.Matches(msg, m.keys.Clear):
		return m.openModal(modalClear), nil
	}

	return m, nil
}

func (m Model) endDay() (tea.Model, tea.Cmd) {
	outcome, err := m.svc.EndDay(m.ctx)
	cmd := m.handleErr(err)

	switch outcome.(type) {
	case challenge.IncompleteDayOutcome:
		return m.openModal(modalRestart), cmd
	case challenge.ChallengeCompletedOutcome:
		return m.openModal(modalComplete), cmd
	}
	return m, cmd
}

func (m Model) requestReset() (tea.Model, tea.Cmd) {
	needsConfirm, err := m.svc.RequestReset(m.ctx)
	cmd := m.handleErr(err)
	if needsConfirm {
		return m.openModal(modalReset), cmd
	}
	return m, cmd
}

func (m Model) openModal(kind modalKind) Model {
	m.modal = components.NewConfirmModal(modalPrompts[kind])
	m.modalKind = kind
	m.state = stateConfirming
	return m
}

func (m Model) closeModal() Model {
	m.state = stateNormal
	m.modalKind = 0
	return m
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.svc.Cancel()
		return m, tea.Quit
	}

	m.modal, _ = m.modal.Update(msg)

	switch {
	case m.modal.Cancelled():
		kind := m.modalKind
		m = m.closeModal()
		if kind == modalRestart || kind == modalReset {
			m.svc.Cancel()
		}
		return m, nil

	case m.modal.Confirmed():
		kind := m.modalKind
		m = m.closeModal()
		return m.confirm(kind)
	}

	return m, nil
}

func (m Model) confirm(kind modalKind) (tea.Model, tea.Cmd) {
	switch kind {
	case modalRestart:
		_, err := m.svc.ForceRestart(m.ctx)
		return m, m.handleErr(err)

	case modalReset:
		_, _, err := m.svc.ConfirmReset(m.ctx)
		return m, m.handleErr(err)

	case modalClear:
		m.cursor = 0
		return m, m.handleErr(m.svc.ClearAllData(m.ctx))

	case modalComplete:
		return m.requestReset()
	}
	return m, nil
}

// handleErr turns a failed operation into a toast. Persistence failures of a
// healthy store already reach the user through the notification router.
func (m Model) handleErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}

	if errors.Is(err, hard75.ErrNotSaved) {
		if !m.svc.Degraded() {
			return nil
		}
		return m.pushToast(notify.LevelWarning, "progress not saved: storage unavailable")
	}

	log.Debug().Err(err).Msg("tui operation rejected")
	return m.pushToast(notify.LevelError, err.Error())
}

func (m Model) pushToast(level notify.Level, message string) tea.Cmd {
	m.toasts.Push(notify.Notification{Level: level, Message: message, CreatedAt: m.now()})
	return m.startToastTick()
}

func (m Model) startToastTick() tea.Cmd {
	if m.toasts.Ticking() || !m.toasts.HasToasts() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}
