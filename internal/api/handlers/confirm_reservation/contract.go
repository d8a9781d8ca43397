package confirm_reservation

import "context"

type ReservationsService interface {
	Confirm(ctx context.Context, reservationID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
