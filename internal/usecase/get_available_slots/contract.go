package get_available_slots

import (
	"context"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
)

// ReservationRepository is the occupancy read interface
type ReservationRepository interface {
	// QueryByDateRange returns reservations starting inside [start, end],
	// excluding the given statuses
	QueryByDateRange(ctx context.Context, start, end time.Time, excludeStatuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// CatalogRepository is the service catalog read interface
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
}

// Logger is the logging interface consumed by the usecase
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
