package logging

import "context"

type contextKey string

const (
	attemptIDKey contextKey = "attempt_id"
	dayKey       contextKey = "day"
)

// WithAttemptID adds the running attempt id to the context.
func WithAttemptID(ctx context.Context, attemptID string) context.Context {
	return context.WithValue(ctx, attemptIDKey, attemptID)
}

// WithDay adds the current challenge day to the context.
func WithDay(ctx context.Context, day int) context.Context {
	return context.WithValue(ctx, dayKey, day)
}

// GetAttemptID retrieves the attempt id from the context.
// Returns empty string if not present.
func GetAttemptID(ctx context.Context) string {
	if id, ok := ctx.Value(attemptIDKey).(string); ok {
		return id
	}
	return ""
}

// GetDay retrieves the challenge day from the context.
func GetDay(ctx context.Context) (int, bool) {
	day, ok := ctx.Value(dayKey).(int)
	return day, ok
}
