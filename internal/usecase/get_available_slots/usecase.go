package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	catalogRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/catalog"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
)

// UseCase computes the availability grid for a date and service.
//
// Reads run without locks and may observe slightly stale data; that is
// acceptable because the commit path re-validates occupancy inside its own
// transaction.
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	clock           clock.Clock
	logger          Logger
}

// NewUseCase creates the usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	clk clock.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		clock:           clk,
		logger:          logger,
	}
}

// Execute runs the availability computation
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, service=%d, date=%s",
		req.UserID, req.ServiceID, req.Date)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Current instant
	now := uc.clock.Now()

	// 3. Resolve the service to learn its duration
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Fetch every non-cancelled reservation of the local day
	dayStart, dayEnd := timegrid.DayBoundsUTC(req.Date)
	reservations, err := uc.reservationRepo.QueryByDateRange(ctx, dayStart, dayEnd, domain.InactiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Derive occupancy and compute per-slot availability
	occupied := occupiedBlockSet(reservations)
	slots := buildSlots(req.Date, service.DurationMinutes, occupied, now)

	uc.logger.Info("GetAvailableSlots: computed %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date)

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
