package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAccessDenied is returned when the requester does not own the reservation
	ErrAccessDenied = errors.New("cancel_reservation: access denied")

	// ErrAlreadyStarted is returned when the appointment start is no longer
	// in the future
	ErrAlreadyStarted = errors.New("cancel_reservation: reservation already started")

	// ErrAlreadyFinalized is returned when the reservation left the pending
	// state: cancelled stays cancelled, and a confirmed reservation requires
	// staff intervention instead of self-cancel
	ErrAlreadyFinalized = errors.New("cancel_reservation: reservation is already finalized")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("cancel_reservation: internal error")
)
