package cancel_reservation

import (
	"context"

	cancelReservation "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/cancel_reservation"
)

type CancelReservationUseCase interface {
	Execute(ctx context.Context, req *cancelReservation.Request) error
}

// StaffCanceller cancels on behalf of the salon; it performs its own
// staff access check
type StaffCanceller interface {
	CancelByStaff(ctx context.Context, reservationID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
