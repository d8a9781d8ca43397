package domain

// Salon timezone. The salon operates in a single fixed-offset timezone
// (UTC+9, no DST). All local-time math applies this constant explicitly;
// nothing in the engine consults the host timezone or a tz database.
const SalonUTCOffsetHours = 9

// Business hours and scheduling constants
const (
	// BlockDurationMinutes is the atomic scheduling unit. Every service
	// duration is a multiple of it and every slot start is aligned to it.
	BlockDurationMinutes = 30

	// Opening time of the business day (local wall clock)
	OpenHour   = 10
	OpenMinute = 0

	// Closing bound: the latest allowed end-of-service (local wall clock).
	// A reservation may end at exactly 20:30 but never later.
	CloseHour   = 20
	CloseMinute = 30

	// ReminderLeadMinutes is how long before the appointment the reminder fires
	ReminderLeadMinutes = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses is the list of statuses whose reservations no longer
// occupy time blocks. Used to filter occupancy queries.
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// ActiveStatuses is the list of statuses whose reservations occupy time blocks
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
