package models

import (
	"errors"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
)

// ErrInvalidStatus is returned when a status string is not a known status
var ErrInvalidStatus = errors.New("invalid reservation status")

// Request models

// GetUserReservationsRequest asks for a user's reservation history
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetDayScheduleRequest asks for the staff view of one local date
type GetDayScheduleRequest struct {
	UserID int64              `json:"userId"`
	Date   timegrid.LocalDate `json:"date"`
}

// Response models

// ReservationResponse is the service-level reservation representation
type ReservationResponse struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"userId"`
	ServiceID       int64    `json:"serviceId"`
	Date            string   `json:"date"`      // salon-local YYYY-MM-DD
	StartTime       string   `json:"startTime"` // salon-local HH:MM
	StartAt         string   `json:"startAt"`   // canonical instant, RFC3339
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	ServiceName     string   `json:"serviceName"`
	ServicePrice    float64  `json:"servicePrice"`
	CancelledAt     *string  `json:"cancelledAt,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ReservationListResponse is a list of reservations
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation converts a domain reservation, deriving the local
// date and wall-clock time from the canonical instant
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:              res.ID,
		UserID:          res.UserID,
		ServiceID:       res.ServiceID,
		Date:            timegrid.LocalDateOf(res.StartAt).String(),
		StartTime:       timegrid.LocalClockOf(res.StartAt).String(),
		StartAt:         res.StartAt.Format(time.RFC3339),
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		ServiceName:     res.ServiceName,
		ServicePrice:    res.ServicePrice,
		CreatedAt:       res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       res.UpdatedAt.Format(time.RFC3339),
	}

	if res.CancelledAt != nil {
		cancelled := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainReservationList converts a list of domain reservations
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	reservations := make([]*ReservationResponse, len(list))
	for i, res := range list {
		reservations[i] = FromDomainReservation(res)
	}
	return &ReservationListResponse{Reservations: reservations}
}

// ToDomainStatus validates and converts a status string
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
