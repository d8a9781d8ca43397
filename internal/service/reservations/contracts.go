package reservations

import (
	"context"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
)

// ReservationRepository is the storage interface consumed by the service
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	QueryByDateRange(ctx context.Context, start, end time.Time, excludeStatuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// Notifier dispatches status-change notifications, fire-and-forget
type Notifier interface {
	Notify(ctx context.Context, targetUserID int64, title, body, link string) error
}

// Logger is the logging interface consumed by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
