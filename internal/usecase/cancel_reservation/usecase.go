package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	reservationRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/reservation"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
)

// Request asks to self-cancel a reservation
type Request struct {
	ReservationID int64
	UserID        int64 // requester; must own the reservation
}

// UseCase is the customer self-cancel path. Staff cancellation goes
// through the reservations service instead.
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	clock           clock.Clock
	staffIDs        []int64
	logger          Logger
}

// NewUseCase creates the usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	notifier Notifier,
	clk clock.Clock,
	staffIDs []int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		clock:           clk,
		staffIDs:        staffIDs,
		logger:          logger,
	}
}

// Execute cancels the reservation. Preconditions are checked in order and
// the first failure wins: the reservation exists, the requester owns it,
// it has not started yet, and it is still pending.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	if req.ReservationID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: reservationID and userID must be positive", ErrInvalidInput)
	}

	// (a) the reservation exists
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// (b) the requester owns it
	if !res.IsOwnedBy(req.UserID) {
		uc.logger.Warn("CancelReservation: user=%d does not own reservation id=%d", req.UserID, res.ID)
		return ErrAccessDenied
	}

	// (c) the appointment has not started yet
	if !res.StartAt.After(uc.clock.Now()) {
		uc.logger.Warn("CancelReservation: reservation id=%d already started", res.ID)
		return ErrAlreadyStarted
	}

	// (d) it is still pending
	if res.IsFinalized() {
		uc.logger.Warn("CancelReservation: reservation id=%d has status=%s", res.ID, res.Status)
		return ErrAlreadyFinalized
	}

	if err := uc.reservationRepo.UpdateStatus(ctx, res.ID, domain.StatusCancelled); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", res.ID, err)
		return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelReservation: successfully cancelled reservation id=%d", res.ID)

	uc.sendCancellations(ctx, res)
	return nil
}

// sendCancellations notifies the owner and each staff member independently;
// failures are logged and never surfaced to the caller
func (uc *UseCase) sendCancellations(ctx context.Context, res *domain.Reservation) {
	link := fmt.Sprintf("/reservations/%d", res.ID)
	when := fmt.Sprintf("%s %s", timegrid.LocalDateOf(res.StartAt), timegrid.LocalClockOf(res.StartAt))

	if err := uc.notifier.Notify(ctx, res.UserID,
		"Reservation cancelled",
		fmt.Sprintf("Your %s appointment on %s has been cancelled.", res.ServiceName, when),
		link,
	); err != nil {
		uc.logger.Error("CancelReservation: failed to notify owner user=%d: %v", res.UserID, err)
	}

	for _, staffID := range uc.staffIDs {
		if err := uc.notifier.Notify(ctx, staffID,
			"Reservation cancelled",
			fmt.Sprintf("%s at %s was cancelled by the customer.", res.ServiceName, when),
			link,
		); err != nil {
			uc.logger.Error("CancelReservation: failed to notify staff user=%d: %v", staffID, err)
		}
	}
}
