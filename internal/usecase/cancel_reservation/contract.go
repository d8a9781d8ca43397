package cancel_reservation

import (
	"context"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
)

// ReservationRepository is the storage interface for the cancel path
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// Notifier dispatches cancellation notifications, fire-and-forget
type Notifier interface {
	Notify(ctx context.Context, targetUserID int64, title, body, link string) error
}

// Logger is the logging interface consumed by the usecase
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
