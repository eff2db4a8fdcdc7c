package booking

import "errors"

var (
	// ErrValidation covers missing or malformed caller input.
	ErrValidation = errors.New("invalid booking request")

	// ErrScheduleNotFound means the schedule id resolves to nothing.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrNoSeatsAvailable means the schedule is sold out or not open for
	// booking.
	ErrNoSeatsAvailable = errors.New("no seats available")

	// ErrSeatAlreadyBooked means another confirmed booking holds the seat.
	ErrSeatAlreadyBooked = errors.New("seat already booked")

	// ErrBookingNotFound means the booking reference resolves to nothing.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrReferenceCollision means a freshly generated booking reference hit
	// the unique column; the engine retries with a new reference.
	ErrReferenceCollision = errors.New("booking reference collision")
)
