package hard75

import "errors"

var (
	// ErrNotSaved is returned when a mutation succeeded in memory but the
	// snapshot could not be persisted. The in-memory state stays authoritative.
	ErrNotSaved = errors.New("progress not saved")

	// ErrNoPendingConfirmation is returned when confirming an action that was
	// never requested.
	ErrNoPendingConfirmation = errors.New("no confirmation pending")

	// ErrConfirmationPending is returned for mutations attempted while a
	// restart or reset confirmation is outstanding.
	ErrConfirmationPending = errors.New("a confirmation is pending")

	// ErrChallengeComplete is returned when changing tasks or photos after
	// day 75 has been closed.
	ErrChallengeComplete = errors.New("challenge already complete")
)
