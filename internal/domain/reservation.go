package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a customer's appointment in the system.
// StartAt is the canonical instant (UTC); wall-clock representation
// is derived through the salon's fixed offset, never stored.
type Reservation struct {
	ID              int64
	UserID          int64
	ServiceID       int64
	StartAt         time.Time
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndAt returns the instant the appointment ends
func (r *Reservation) EndAt() time.Time {
	return r.StartAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// IsActive returns true if the reservation still occupies its time blocks
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsFinalized returns true if the reservation left the pending state
// and can no longer be self-cancelled by its owner
func (r *Reservation) IsFinalized() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCancelled
}

// CanBeConfirmed returns true if staff may confirm the reservation
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// IsOwnedBy returns true if the reservation belongs to the given user
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID == userID
}
