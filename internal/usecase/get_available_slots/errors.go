package get_available_slots

import "errors"

var (
	// ErrServiceNotFound is returned when the requested service is not in the catalog
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
