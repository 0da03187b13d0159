package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook adds attempt_id and day from the event context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if id := GetAttemptID(ctx); id != "" {
		e.Str("attempt_id", id)
	}

	if day, ok := GetDay(ctx); ok {
		e.Int("day", day)
	}
}
