package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers"
	"github.com/hyukraeyo/reservation-app-sub000/internal/api/middleware"
	"github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations"
	"github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations/models"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgAccessDenied = "only salon staff can view the day schedule"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule?date={YYYY-MM-DD}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	date, err := timegrid.ParseLocalDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid date=%s: user_id=%d", r.URL.Query().Get("date"), userID)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDaySchedule(r.Context(), &models.GetDayScheduleRequest{
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /schedule - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /schedule - Failed to fetch schedule: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule - Fetched %d reservations: date=%s, user_id=%d",
		len(result.Reservations), date, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
