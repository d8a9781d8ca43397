package domain

import "time"

// SalonService represents a named offering from the salon's catalog.
// The catalog is read-only for the booking engine: services are seeded
// by migrations and never mutated here.
type SalonService struct {
	ID              int64
	Name            string
	DurationMinutes int // always a positive multiple of BlockDurationMinutes
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
