package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger tagged with the "cmp" key. The logger carries
// ContextHook so events logged with Ctx pick up attempt and day fields.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger().Hook(ContextHook{})
}

// WithChallenge annotates ctx with both the attempt id and the day.
func WithChallenge(ctx context.Context, attemptID string, day int) context.Context {
	return WithDay(WithAttemptID(ctx, attemptID), day)
}
