package notifyservice

import "time"

// Notification is the payload for an immediate push notification
type Notification struct {
	TargetUserID int64  `json:"target_user_id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	Link         string `json:"link,omitempty"`
}

// ReminderRequest schedules a reminder dispatch at a future instant.
// Actual firing is the notification service's job; the booking engine
// only registers the schedule.
type ReminderRequest struct {
	ReservationID int64     `json:"reservation_id"`
	FireAt        time.Time `json:"fire_at"`
}

// ErrorResponse is the error body returned by the notification service
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger is the logging interface consumed by the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
