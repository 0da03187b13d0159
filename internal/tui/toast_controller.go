package tui

import (
	"time"

	"github.com/colonyops/hard75/internal/core/notify"
)

const (
	defaultToastTTL   = 3 * time.Second
	defaultMaxToasts  = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

// ToastController tracks the toasts currently on screen.
type ToastController struct {
	queue   *notify.Queue
	ttl     time.Duration
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{
		queue: notify.NewQueue(defaultMaxToasts),
		ttl:   defaultToastTTL,
	}
}

// Push adds a notification to the toast stack, evicting the oldest when full.
func (c *ToastController) Push(n notify.Notification) {
	c.queue.Push(n)
}

// Tick removes toasts older than the TTL at now.
func (c *ToastController) Tick(now time.Time) {
	c.queue.Prune(now, c.ttl)
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	c.queue.DropNewest()
}

// DismissAll removes all active toasts.
func (c *ToastController) DismissAll() {
	c.queue.Clear()
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return c.queue.Len() > 0
}

// Toasts returns the active toasts oldest first.
func (c *ToastController) Toasts() []notify.Notification {
	return c.queue.Items()
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
