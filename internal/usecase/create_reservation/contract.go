package create_reservation

import (
	"context"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
)

// ReservationRepository is the storage interface for the commit path
type ReservationRepository interface {
	// QueryByDateRange returns reservations starting inside [start, end],
	// excluding the given statuses. Inside a transaction the rows are
	// locked until commit.
	QueryByDateRange(ctx context.Context, start, end time.Time, excludeStatuses []domain.ReservationStatus) ([]*domain.Reservation, error)

	// InsertPending persists a new pending reservation
	InsertPending(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// CatalogRepository is the service catalog read interface
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
}

// Notifier dispatches notifications and schedules reminders.
// Both are fire-and-forget from the usecase's point of view.
type Notifier interface {
	Notify(ctx context.Context, targetUserID int64, title, body, link string) error
	ScheduleReminder(ctx context.Context, reservationID int64, fireAt time.Time) error
}

// TransactionManager provides the serializable boundary around
// the read-occupancy + write-reservation sequence
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface consumed by the usecase
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
