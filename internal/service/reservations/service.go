package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	reservationRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/reservation"
	"github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations/models"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
)

// Service covers the read side of reservations plus the staff-only status
// transitions (confirm, staff cancel). Creation and customer self-cancel
// live in their own usecases.
type Service struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	staffIDs        []int64
	logger          Logger
}

// NewService creates the reservations service
func NewService(
	reservationRepo ReservationRepository,
	notifier Notifier,
	staffIDs []int64,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		staffIDs:        staffIDs,
		logger:          logger,
	}
}

// GetByID fetches one reservation. Customers see only their own
// reservations; staff see all of them.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !res.IsOwnedBy(userID) && !s.isStaff(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations fetches a user's reservation history with an
// optional status filter
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetDaySchedule returns every reservation of one local date, including
// cancelled ones. Staff only.
func (s *Service) GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetDaySchedule: user=%d, date=%s", req.UserID, req.Date)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("GetDaySchedule: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	dayStart, dayEnd := timegrid.DayBoundsUTC(req.Date)
	reservations, err := s.reservationRepo.QueryByDateRange(ctx, dayStart, dayEnd, nil)
	if err != nil {
		s.logger.Error("GetDaySchedule: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Confirm transitions a pending reservation to confirmed. Staff only.
// A reservation that already left the pending state cannot be re-opened.
func (s *Service) Confirm(ctx context.Context, reservationID int64, userID int64) error {
	s.logger.Info("Confirm: reservation=%d by user=%d", reservationID, userID)

	if !s.isStaff(userID) {
		s.logger.Warn("Confirm: user=%d is not staff", userID)
		return ErrAccessDenied
	}

	res, err := s.getForUpdate(ctx, reservationID)
	if err != nil {
		return err
	}

	if !res.CanBeConfirmed() {
		s.logger.Warn("Confirm: reservation id=%d has status=%s", res.ID, res.Status)
		return ErrAlreadyFinalized
	}

	if err := s.updateStatus(ctx, res.ID, domain.StatusConfirmed); err != nil {
		return err
	}

	s.logger.Info("Confirm: reservation id=%d confirmed", res.ID)
	s.notifyOwner(ctx, res, "Reservation confirmed",
		fmt.Sprintf("Your %s appointment has been confirmed.", res.ServiceName))
	return nil
}

// CancelByStaff cancels any active reservation on behalf of the salon.
// This is the only way a confirmed reservation gets cancelled.
func (s *Service) CancelByStaff(ctx context.Context, reservationID int64, userID int64) error {
	s.logger.Info("CancelByStaff: reservation=%d by user=%d", reservationID, userID)

	if !s.isStaff(userID) {
		s.logger.Warn("CancelByStaff: user=%d is not staff", userID)
		return ErrAccessDenied
	}

	res, err := s.getForUpdate(ctx, reservationID)
	if err != nil {
		return err
	}

	if !res.IsActive() {
		s.logger.Warn("CancelByStaff: reservation id=%d is already cancelled", res.ID)
		return ErrAlreadyFinalized
	}

	if err := s.updateStatus(ctx, res.ID, domain.StatusCancelled); err != nil {
		return err
	}

	s.logger.Info("CancelByStaff: reservation id=%d cancelled", res.ID)
	s.notifyOwner(ctx, res, "Reservation cancelled",
		fmt.Sprintf("Your %s appointment was cancelled by the salon.", res.ServiceName))
	return nil
}

// helpers

func (s *Service) getForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return res, nil
}

func (s *Service) updateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if err := s.reservationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("failed to update reservation id=%d to status=%s: %v", id, status, err)
		return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) notifyOwner(ctx context.Context, res *domain.Reservation, title, body string) {
	link := fmt.Sprintf("/reservations/%d", res.ID)
	if err := s.notifier.Notify(ctx, res.UserID, title, body, link); err != nil {
		s.logger.Error("failed to notify owner user=%d about reservation id=%d: %v", res.UserID, res.ID, err)
	}
}

func (s *Service) isStaff(userID int64) bool {
	for _, id := range s.staffIDs {
		if id == userID {
			return true
		}
	}
	return false
}
