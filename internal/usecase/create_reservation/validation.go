package create_reservation

import (
	"fmt"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
)

// validateRequest validates the incoming request
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// occupiedBlockSet expands active reservations into the set of block-start
// instants they cover
func occupiedBlockSet(reservations []*domain.Reservation) map[time.Time]struct{} {
	occupied := make(map[time.Time]struct{})

	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		for _, block := range timegrid.BlockStarts(res.StartAt, res.DurationMinutes) {
			occupied[block] = struct{}{}
		}
	}

	return occupied
}

// allBlocksFree reports whether every block the candidate needs is absent
// from the occupied set
func allBlocksFree(startAt time.Time, durationMinutes int, occupied map[time.Time]struct{}) bool {
	for _, block := range timegrid.BlockStarts(startAt, durationMinutes) {
		if _, taken := occupied[block]; taken {
			return false
		}
	}
	return true
}
