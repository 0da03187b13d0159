package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus dispatches published events to subscribers on a single goroutine.
// Publish never blocks; when the buffer is full the event is dropped and the
// OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	if buffer < 1 {
		buffer = 1
	}
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled. Events still buffered at
// cancellation are delivered before Start returns.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		case <-ctx.Done():
			bus.drain()
			return
		}
	}
}

func (bus *EventBus) drain() {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		default:
			return
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	handlers := make([]func(any), len(bus.subs[env.event]))
	copy(handlers, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range handlers {
		bus.invoke(env, fn)
	}
}

func (bus *EventBus) invoke(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func typedSubscribe[P any](bus *EventBus, event Event, fn func(P)) {
	bus.subscribe(event, func(payload any) {
		if p, ok := payload.(P); ok {
			fn(p)
		}
	})
}

func (bus *EventBus) PublishTaskToggled(p TaskToggledPayload) { bus.send(EventTaskToggled, p) }
func (bus *EventBus) SubscribeTaskToggled(fn func(TaskToggledPayload)) {
	typedSubscribe(bus, EventTaskToggled, fn)
}

func (bus *EventBus) PublishDayAdvanced(p DayAdvancedPayload) { bus.send(EventDayAdvanced, p) }
func (bus *EventBus) SubscribeDayAdvanced(fn func(DayAdvancedPayload)) {
	typedSubscribe(bus, EventDayAdvanced, fn)
}

func (bus *EventBus) PublishDayIncomplete(p DayIncompletePayload) { bus.send(EventDayIncomplete, p) }
func (bus *EventBus) SubscribeDayIncomplete(fn func(DayIncompletePayload)) {
	typedSubscribe(bus, EventDayIncomplete, fn)
}

func (bus *EventBus) PublishChallengeCompleted(p ChallengeCompletedPayload) {
	bus.send(EventChallengeCompleted, p)
}

func (bus *EventBus) SubscribeChallengeCompleted(fn func(ChallengeCompletedPayload)) {
	typedSubscribe(bus, EventChallengeCompleted, fn)
}

func (bus *EventBus) PublishAttemptArchived(p AttemptArchivedPayload) {
	bus.send(EventAttemptArchived, p)
}

func (bus *EventBus) SubscribeAttemptArchived(fn func(AttemptArchivedPayload)) {
	typedSubscribe(bus, EventAttemptArchived, fn)
}

func (bus *EventBus) PublishChallengeReset(p ChallengeResetPayload) {
	bus.send(EventChallengeReset, p)
}

func (bus *EventBus) SubscribeChallengeReset(fn func(ChallengeResetPayload)) {
	typedSubscribe(bus, EventChallengeReset, fn)
}

func (bus *EventBus) PublishChallengeCleared(p ChallengeClearedPayload) {
	bus.send(EventChallengeCleared, p)
}

func (bus *EventBus) SubscribeChallengeCleared(fn func(ChallengeClearedPayload)) {
	typedSubscribe(bus, EventChallengeCleared, fn)
}

func (bus *EventBus) PublishPhotoRecorded(p PhotoRecordedPayload) { bus.send(EventPhotoRecorded, p) }
func (bus *EventBus) SubscribePhotoRecorded(fn func(PhotoRecordedPayload)) {
	typedSubscribe(bus, EventPhotoRecorded, fn)
}

func (bus *EventBus) PublishPersistFailed(p PersistFailedPayload) { bus.send(EventPersistFailed, p) }
func (bus *EventBus) SubscribePersistFailed(fn func(PersistFailedPayload)) {
	typedSubscribe(bus, EventPersistFailed, fn)
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	typedSubscribe(bus, EventNotificationPublished, fn)
}
