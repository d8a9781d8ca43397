package get_available_slots

import (
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/types"
)

// Request asks for the availability grid of one local date and service
type Request struct {
	UserID    int64             // requesting user, for logging only
	ServiceID int64             // catalog service the customer wants to book
	Date      timegrid.LocalDate // salon-local calendar date
}

// Response lists every block start of the business day with its
// availability for the requested service duration
type Response struct {
	Date            timegrid.LocalDate
	ServiceID       int64
	DurationMinutes int
	Slots           []Slot
}

// Slot is one 30-minute grid position
type Slot struct {
	StartTime types.TimeString // local wall-clock block start
	Available bool             // true if the whole service fits starting here
}
