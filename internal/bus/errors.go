package bus

import "errors"

var (
	// ErrValidation covers missing search parameters or a from/to pair
	// pointing at the same location.
	ErrValidation = errors.New("invalid search request")

	// ErrScheduleNotFound means the schedule id resolves to nothing.
	ErrScheduleNotFound = errors.New("schedule not found")
)
