package create_reservation

import (
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/types"
)

// Request asks to commit a reservation for one grid slot
type Request struct {
	UserID    int64              // owner of the reservation
	ServiceID int64              // catalog service to book
	Date      timegrid.LocalDate // salon-local calendar date
	StartTime types.TimeString   // local wall-clock block start, e.g. "10:30"
}

// Response carries the committed reservation
type Response struct {
	ID              int64
	UserID          int64
	ServiceID       int64
	Date            timegrid.LocalDate
	StartTime       types.TimeString
	StartAt         time.Time
	DurationMinutes int
	Status          string

	// Denormalized service data
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
