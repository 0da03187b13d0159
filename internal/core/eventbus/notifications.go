package eventbus

import (
	"fmt"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeDayAdvanced(func(p DayAdvancedPayload) {
		r.notifyf(notify.LevelInfo, "Day %d complete! 🎉", p.ClosedDay)
	})

	r.bus.SubscribeChallengeReset(func(p ChallengeResetPayload) {
		switch p.Reason {
		case challenge.ReasonIncomplete:
			r.notifyf(notify.LevelInfo, "Starting fresh from Day 1 💪")
		default:
			r.notifyf(notify.LevelInfo, "New challenge started! 🚀")
		}
	})

	r.bus.SubscribeChallengeCleared(func(ChallengeClearedPayload) {
		r.notifyf(notify.LevelInfo, "All data cleared")
	})

	r.bus.SubscribePhotoRecorded(func(PhotoRecordedPayload) {
		r.notifyf(notify.LevelInfo, "Photo saved! 📸")
	})

	r.bus.SubscribeChallengeCompleted(func(ChallengeCompletedPayload) {
		r.notifyf(notify.LevelInfo, "Challenge complete! 🏆")
	})

	r.bus.SubscribePersistFailed(func(p PersistFailedPayload) {
		r.notifyf(notify.LevelWarning, "progress not saved: %v", p.Err)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
