package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	catalogRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/catalog"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/txmanager"
)

// UseCase commits a reservation.
//
// The commit is the one operation that must be safe under concurrent
// callers targeting overlapping time: occupancy is re-derived inside a
// serializable transaction against current state, never against a snapshot
// taken earlier in the request, and the insert happens only if every
// required block is still free. Two simultaneous commits for the same slot
// resolve to exactly one reservation and one ErrSlotNotAvailable.
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	notifier        Notifier
	txManager       TransactionManager
	clock           clock.Clock
	staffIDs        []int64
	logger          Logger
}

// NewUseCase creates the usecase. staffIDs receive a notification about
// every new reservation.
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	txManager TransactionManager,
	clk clock.Clock,
	staffIDs []int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		notifier:        notifier,
		txManager:       txManager,
		clock:           clk,
		staffIDs:        staffIDs,
		logger:          logger,
	}
}

// Execute validates the request and commits the reservation
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date, req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Current instant
	now := uc.clock.Now()

	// 3. Resolve the service (duration, denormalized name and price)
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Error("CreateReservation: service id=%d has non-positive duration %d",
			service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 4. Grid alignment. The UI also checks this, but the UI is not the
	// source of truth.
	if !timegrid.IsBlockStart(req.StartTime) {
		uc.logger.Warn("CreateReservation: time %s is not a block start", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	// 5. Business-hour bound: every required block must end by closing
	if !timegrid.FitsBusinessHours(req.StartTime, service.DurationMinutes) {
		uc.logger.Warn("CreateReservation: %s + %dmin does not fit business hours",
			req.StartTime, service.DurationMinutes)
		return nil, ErrOutsideBusinessHours
	}

	// 6. The start must still be in the future
	startAt := timegrid.Combine(req.Date, req.StartTime)
	if !startAt.After(now) {
		uc.logger.Warn("CreateReservation: start %s is not in the future", startAt)
		return nil, ErrTooLateToBook
	}

	var result *domain.Reservation

	// 7. Re-validate occupancy and insert inside one serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayStart, dayEnd := timegrid.DayBoundsUTC(req.Date)

		// 7.1. Re-read the day's active reservations with row locks
		reservations, err := uc.reservationRepo.QueryByDateRange(txCtx, dayStart, dayEnd, domain.InactiveStatuses)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 7.2. Recheck every required block against current state
		occupied := occupiedBlockSet(reservations)
		if !allBlocksFree(startAt, service.DurationMinutes, occupied) {
			uc.logger.Warn("CreateReservation: slot %s %s already occupied", req.Date, req.StartTime)
			return ErrSlotNotAvailable
		}

		// 7.3. Still free: persist as pending
		created, err := uc.reservationRepo.InsertPending(txCtx, &domain.Reservation{
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			StartAt:         startAt,
			DurationMinutes: service.DurationMinutes,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to insert reservation: %v", err)
			return fmt.Errorf("%w: failed to insert reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// A serialization abort means a concurrent commit won the slot
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateReservation: serialization conflict for %s %s", req.Date, req.StartTime)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 8. Side effects after commit. Failures are logged and never roll the
	// reservation back.
	uc.scheduleReminder(ctx, result, now)
	uc.sendConfirmations(ctx, result)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ServiceID:       result.ServiceID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		StartAt:         result.StartAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// scheduleReminder registers a reminder one hour before the appointment,
// skipped when that instant is already past
func (uc *UseCase) scheduleReminder(ctx context.Context, res *domain.Reservation, now time.Time) {
	fireAt := res.StartAt.Add(-time.Duration(domain.ReminderLeadMinutes) * time.Minute)
	if !fireAt.After(now) {
		uc.logger.Info("CreateReservation: reminder instant for reservation id=%d already passed, skipping", res.ID)
		return
	}

	if err := uc.notifier.ScheduleReminder(ctx, res.ID, fireAt); err != nil {
		uc.logger.Error("CreateReservation: failed to schedule reminder for reservation id=%d: %v", res.ID, err)
	}
}

// sendConfirmations notifies the owner and each staff member. Recipients
// are attempted independently so one failure does not block the others.
func (uc *UseCase) sendConfirmations(ctx context.Context, res *domain.Reservation) {
	link := fmt.Sprintf("/reservations/%d", res.ID)
	when := fmt.Sprintf("%s %s", timegrid.LocalDateOf(res.StartAt), timegrid.LocalClockOf(res.StartAt))

	if err := uc.notifier.Notify(ctx, res.UserID,
		"Reservation received",
		fmt.Sprintf("Your %s appointment on %s is awaiting confirmation.", res.ServiceName, when),
		link,
	); err != nil {
		uc.logger.Error("CreateReservation: failed to notify owner user=%d: %v", res.UserID, err)
	}

	for _, staffID := range uc.staffIDs {
		if err := uc.notifier.Notify(ctx, staffID,
			"New reservation",
			fmt.Sprintf("%s at %s is awaiting confirmation.", res.ServiceName, when),
			link,
		); err != nil {
			uc.logger.Error("CreateReservation: failed to notify staff user=%d: %v", staffID, err)
		}
	}
}
