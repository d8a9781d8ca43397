package get_day_schedule

import (
	"context"

	"github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations/models"
)

type ReservationsService interface {
	GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
