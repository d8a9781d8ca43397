package create_reservation

import "errors"

var (
	// ErrServiceNotFound is returned when the requested service is not in the catalog
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrInvalidTimeSlot is returned when the start time is not a grid block start
	ErrInvalidTimeSlot = errors.New("create_reservation: start time is not on the booking grid")

	// ErrOutsideBusinessHours is returned when the service would end after closing
	ErrOutsideBusinessHours = errors.New("create_reservation: reservation does not fit business hours")

	// ErrTooLateToBook is returned when the requested start is not in the future
	ErrTooLateToBook = errors.New("create_reservation: start time is in the past")

	// ErrSlotNotAvailable is returned when another reservation occupies one of
	// the required blocks at commit time. Expected under contention: the caller
	// should re-fetch availability and pick again, not retry the same slot.
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("create_reservation: internal error")
)
