// Package timegrid is the canonical conversion layer between absolute
// instants and the salon's local wall-clock day, plus the enumeration of
// the fixed 30-minute scheduling grid.
//
// All conversions apply the salon's fixed UTC offset explicitly, so results
// are identical regardless of the timezone the process runs in.
package timegrid

import (
	"fmt"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/types"
)

// salonOffset is the only place the fixed offset turns into arithmetic
const salonOffset = time.Duration(domain.SalonUTCOffsetHours) * time.Hour

// LocalDate is a calendar date in the salon's timezone
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewLocalDate builds a LocalDate from its components
func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{Year: year, Month: month, Day: day}
}

// ParseLocalDate parses a YYYY-MM-DD string into a LocalDate
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return LocalDate{}, err
	}
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}, nil
}

// IsZero reports whether the date is the zero value
func (d LocalDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the YYYY-MM-DD representation
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LocalDateOf returns the salon-local calendar date containing the instant
func LocalDateOf(instant time.Time) LocalDate {
	y, m, d := instant.UTC().Add(salonOffset).Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// LocalClockOf returns the salon-local wall-clock time of the instant
func LocalClockOf(instant time.Time) types.TimeString {
	return types.NewTimeString(instant.UTC().Add(salonOffset))
}

// Combine produces the canonical instant for a local date and wall-clock time
func Combine(date LocalDate, clock types.TimeString) time.Time {
	return time.Date(date.Year, date.Month, date.Day,
		clock.Hour(), clock.Minute(), 0, 0, time.UTC).Add(-salonOffset)
}

// DayBoundsUTC returns the instant range [local 00:00, local 23:59:59.999]
// of the given local date. Used to scope single-day occupancy queries.
func DayBoundsUTC(date LocalDate) (time.Time, time.Time) {
	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC).Add(-salonOffset)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// EnumerateBlocks returns every bookable block start of a business day,
// in order: 10:00, 10:30, ... up to the last start whose own block still
// ends by closing time.
func EnumerateBlocks() []types.TimeString {
	open := domain.OpenHour*60 + domain.OpenMinute
	close := domain.CloseHour*60 + domain.CloseMinute

	blocks := make([]types.TimeString, 0, (close-open)/domain.BlockDurationMinutes)
	for cur := open; cur+domain.BlockDurationMinutes <= close; cur += domain.BlockDurationMinutes {
		ts, err := types.NewTimeStringFromMinutes(cur)
		if err != nil {
			// unreachable with valid business-hour constants
			break
		}
		blocks = append(blocks, ts)
	}
	return blocks
}

// IsBlockStart reports whether clock is one of the grid's block starts
func IsBlockStart(clock types.TimeString) bool {
	open := domain.OpenHour*60 + domain.OpenMinute
	close := domain.CloseHour*60 + domain.CloseMinute
	m := clock.MinutesFromMidnight()
	return m >= open && m+domain.BlockDurationMinutes <= close &&
		(m-open)%domain.BlockDurationMinutes == 0
}

// BlocksNeeded returns how many consecutive 30-minute blocks a service of
// the given duration occupies, rounding partial blocks up. Durations <= 0
// are a caller error and are rejected before this point.
func BlocksNeeded(durationMinutes int) int {
	return (durationMinutes + domain.BlockDurationMinutes - 1) / domain.BlockDurationMinutes
}

// FitsBusinessHours reports whether a service starting at clock ends no
// later than closing time. The bound is on the end of the last required
// block, not just the start.
func FitsBusinessHours(clock types.TimeString, durationMinutes int) bool {
	close := domain.CloseHour*60 + domain.CloseMinute
	end := clock.MinutesFromMidnight() + BlocksNeeded(durationMinutes)*domain.BlockDurationMinutes
	return end <= close
}

// BlockStarts expands a reservation into the instants of every block it
// covers, starting at startAt
func BlockStarts(startAt time.Time, durationMinutes int) []time.Time {
	n := BlocksNeeded(durationMinutes)
	starts := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		starts = append(starts, startAt.Add(time.Duration(i*domain.BlockDurationMinutes)*time.Minute))
	}
	return starts
}
