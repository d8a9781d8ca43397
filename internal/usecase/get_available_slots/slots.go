package get_available_slots

import (
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/types"
)

// occupiedBlockSet expands every active reservation into the block-start
// instants it covers and returns their union. Occupancy is always derived
// fresh from reservations; there is no persisted availability table to
// drift out of sync.
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

// isBookable reports whether a service of the given duration can start at
// clockTime on date:
//  1. clockTime is a grid block start,
//  2. the start instant is still in the future,
//  3. every required block ends by closing time and is unoccupied.
func isBookable(
	date timegrid.LocalDate,
	clockTime types.TimeString,
	durationMinutes int,
	occupied map[time.Time]struct{},
	now time.Time,
) bool {
	if !timegrid.IsBlockStart(clockTime) {
		return false
	}

	startAt := timegrid.Combine(date, clockTime)
	if !startAt.After(now) {
		return false
	}

	// The bound is on the end of the last block, not the start: a service
	// whose tail would run past closing is rejected even when every block
	// before closing looks free.
	if !timegrid.FitsBusinessHours(clockTime, durationMinutes) {
		return false
	}

	for _, block := range timegrid.BlockStarts(startAt, durationMinutes) {
		if _, taken := occupied[block]; taken {
			return false
		}
	}

	return true
}

// buildSlots computes availability for every enumerated block start
func buildSlots(
	date timegrid.LocalDate,
	durationMinutes int,
	occupied map[time.Time]struct{},
	now time.Time,
) []Slot {
	blocks := timegrid.EnumerateBlocks()
	slots := make([]Slot, len(blocks))

	for i, start := range blocks {
		slots[i] = Slot{
			StartTime: start,
			Available: isBookable(date, start, durationMinutes, occupied, now),
		}
	}

	return slots
}
