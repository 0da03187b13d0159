// Package eventbus provides a typed publish/subscribe event bus that carries
// challenge domain events from the service to presentation and logging.
package eventbus

import (
	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/notify"
)

// Event names a domain event.
type Event string

// Keep list sorted A-Z.
const (
	EventAttemptArchived       Event = "attempt.archived"
	EventChallengeCleared      Event = "challenge.cleared"
	EventChallengeCompleted    Event = "challenge.completed"
	EventChallengeReset        Event = "challenge.reset"
	EventDayAdvanced           Event = "day.advanced"
	EventDayIncomplete         Event = "day.incomplete"
	EventNotificationPublished Event = "notification.published"
	EventPersistFailed         Event = "persist.failed"
	EventPhotoRecorded         Event = "photo.recorded"
	EventTaskToggled           Event = "task.toggled"
)

// AllEvents returns every event name in sorted order.
func AllEvents() []Event {
	return []Event{
		EventAttemptArchived,
		EventChallengeCleared,
		EventChallengeCompleted,
		EventChallengeReset,
		EventDayAdvanced,
		EventDayIncomplete,
		EventNotificationPublished,
		EventPersistFailed,
		EventPhotoRecorded,
		EventTaskToggled,
	}
}

// TaskToggledPayload is emitted after a checklist item flips.
type TaskToggledPayload struct {
	Day  int
	Task challenge.Task
	Done bool
}

// DayAdvancedPayload is emitted when a fully completed day is closed.
type DayAdvancedPayload struct {
	ClosedDay int
	NewDay    int
}

// DayIncompletePayload is emitted when ending a day is refused because tasks
// are still open.
type DayIncompletePayload struct {
	Day     int
	Missing []challenge.Task
}

// ChallengeCompletedPayload is emitted when day 75 is closed.
type ChallengeCompletedPayload struct {
	AttemptID     string
	DaysCompleted int
}

// AttemptArchivedPayload is emitted when an attempt is appended to history.
type AttemptArchivedPayload struct {
	Attempt challenge.AttemptRecord
}

// ChallengeResetPayload is emitted after a restart or reset brings the
// challenge back to day 1.
type ChallengeResetPayload struct {
	Reason    challenge.Reason
	AttemptID string
}

// ChallengeClearedPayload is emitted after all data is wiped.
type ChallengeClearedPayload struct{}

// PhotoRecordedPayload is emitted when a progress photo is stored.
type PhotoRecordedPayload struct {
	Day  int
	Size int
}

// PersistFailedPayload is emitted when a snapshot could not be written.
type PersistFailedPayload struct {
	Op  string
	Err error
}

// NotificationPublishedPayload carries a user-facing message.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}
