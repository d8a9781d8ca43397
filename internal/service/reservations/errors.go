package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied is returned when the requester lacks rights for the operation
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyFinalized is returned when the reservation already left the
	// state required by the operation
	ErrAlreadyFinalized = errors.New("reservation is already finalized")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
