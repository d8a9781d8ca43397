package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers"
	"github.com/hyukraeyo/reservation-app-sub000/internal/api/middleware"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	getAvailableSlots "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "serviceId query parameter is required"
	msgInvalidServiceID = "invalid serviceId query parameter"
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?serviceId={id}&date={YYYY-MM-DD}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	rawServiceID := r.URL.Query().Get("serviceId")
	if rawServiceID == "" {
		h.logger.Warn("GET /available-slots - Missing serviceId: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(rawServiceID, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid serviceId=%s: user_id=%d", rawServiceID, userID)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := timegrid.ParseLocalDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date=%s: user_id=%d", r.URL.Query().Get("date"), userID)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed to build slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Built %d slots: service_id=%d, date=%s",
		len(result.Slots), serviceID, date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
