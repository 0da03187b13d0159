// Package notify defines user-facing notification values.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single message shown to the user.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Expired reports whether n is older than ttl at now.
func (n Notification) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(n.CreatedAt) >= ttl
}

// Queue is a bounded FIFO of recent notifications. The zero value is not
// usable; construct with NewQueue.
type Queue struct {
	limit int
	items []Notification
}

// NewQueue creates a queue holding at most limit notifications.
func NewQueue(limit int) *Queue {
	if limit < 1 {
		limit = 1
	}
	return &Queue{limit: limit}
}

// Push appends n, evicting the oldest entry when the queue is full.
func (q *Queue) Push(n Notification) {
	q.items = append(q.items, n)
	if len(q.items) > q.limit {
		q.items = q.items[len(q.items)-q.limit:]
	}
}

// Prune removes notifications that expired at now.
func (q *Queue) Prune(now time.Time, ttl time.Duration) {
	kept := q.items[:0]
	for _, n := range q.items {
		if !n.Expired(now, ttl) {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

// DropNewest removes the most recently pushed notification.
func (q *Queue) DropNewest() {
	if len(q.items) > 0 {
		q.items = q.items[:len(q.items)-1]
	}
}

// Clear removes every notification.
func (q *Queue) Clear() {
	q.items = q.items[:0]
}

// Items returns the queued notifications oldest first.
func (q *Queue) Items() []Notification {
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int { return len(q.items) }
