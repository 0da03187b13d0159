package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs every published event at debug level, dropped
// events at warn and subscriber panics at error.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		ev := logger.Debug().Str("event", string(event))
		withPayloadFields(ev, payload).Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func withPayloadFields(ev *zerolog.Event, payload any) *zerolog.Event {
	switch p := payload.(type) {
	case TaskToggledPayload:
		return ev.Int("day", p.Day).Stringer("task", p.Task).Bool("done", p.Done)
	case DayAdvancedPayload:
		return ev.Int("closed_day", p.ClosedDay).Int("new_day", p.NewDay)
	case DayIncompletePayload:
		return ev.Int("day", p.Day).Int("missing", len(p.Missing))
	case ChallengeCompletedPayload:
		return ev.Str("attempt_id", p.AttemptID)
	case AttemptArchivedPayload:
		return ev.Str("attempt_id", p.Attempt.ID).Int("days_completed", p.Attempt.DaysCompleted)
	case ChallengeResetPayload:
		return ev.Str("reason", string(p.Reason)).Str("attempt_id", p.AttemptID)
	case PhotoRecordedPayload:
		return ev.Int("day", p.Day).Int("bytes", p.Size)
	case PersistFailedPayload:
		return ev.Str("op", p.Op).AnErr("cause", p.Err)
	}
	return ev
}
