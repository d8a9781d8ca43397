package cancel_reservation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers"
	"github.com/hyukraeyo/reservation-app-sub000/internal/api/middleware"
	"github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations"
	cancelReservation "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
	msgAccessDenied         = "access to this reservation is denied"
	msgAlreadyStarted       = "the appointment has already started"
	msgAlreadyFinalized     = "the reservation is already finalized"
)

type Handler struct {
	useCase     CancelReservationUseCase
	staffCancel StaffCanceller
	logger      Logger
}

func NewHandler(useCase CancelReservationUseCase, staffCancel StaffCanceller, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		staffCancel: staffCancel,
		logger:      logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
//
// Owners self-cancel through the usecase; when the requester does not own
// the reservation the handler falls through to the staff path, which does
// its own access check.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation id: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	err = h.useCase.Execute(r.Context(), &cancelReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
	})
	if err != nil && errors.Is(err, cancelReservation.ErrAccessDenied) {
		err = h.cancelAsStaff(r.Context(), reservationID, userID)
	}

	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelReservation.ErrAlreadyStarted):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already started: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyStarted)

		case errors.Is(err, cancelReservation.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already finalized: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyFinalized)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// cancelAsStaff maps service errors back into the usecase taxonomy so the
// response mapping above stays in one place
func (h *Handler) cancelAsStaff(ctx context.Context, reservationID, userID int64) error {
	err := h.staffCancel.CancelByStaff(ctx, reservationID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, reservations.ErrReservationNotFound):
		return cancelReservation.ErrReservationNotFound
	case errors.Is(err, reservations.ErrAccessDenied):
		return cancelReservation.ErrAccessDenied
	case errors.Is(err, reservations.ErrAlreadyFinalized):
		return cancelReservation.ErrAlreadyFinalized
	default:
		return err
	}
}
