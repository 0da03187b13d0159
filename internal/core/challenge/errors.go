package challenge

import "errors"

var (
	// ErrNotFound is returned by a Store when no snapshot has been saved.
	ErrNotFound = errors.New("challenge snapshot not found")

	// ErrDayOutOfRange is returned for a day outside 1..TotalDays.
	ErrDayOutOfRange = errors.New("day out of range")

	// ErrEmptyPhoto is returned when recording a photo without image data.
	ErrEmptyPhoto = errors.New("photo is empty")
)
