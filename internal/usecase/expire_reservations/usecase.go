// Package expire_reservations is the maintenance sweep moving pending
// reservations whose start instant has passed into the cancelled state.
// It is not a user action: the scheduler in cmd/main runs it periodically.
package expire_reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
)

// ErrInternal is returned on storage failures
var ErrInternal = errors.New("expire_reservations: internal error")

// ReservationRepository is the storage interface for the sweep
type ReservationRepository interface {
	// ExpirePending cancels pending reservations starting before the given
	// instant and returns how many rows changed
	ExpirePending(ctx context.Context, before time.Time) (int64, error)
}

// Logger is the logging interface consumed by the usecase
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UseCase runs the expiry sweep
type UseCase struct {
	reservationRepo ReservationRepository
	clock           clock.Clock
	logger          Logger
}

// NewUseCase creates the usecase
func NewUseCase(reservationRepo ReservationRepository, clk clock.Clock, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		clock:           clk,
		logger:          logger,
	}
}

// Execute expires stale pending reservations. Idempotent: a second run
// over the same state changes nothing and reports zero.
func (uc *UseCase) Execute(ctx context.Context) (int64, error) {
	now := uc.clock.Now()

	expired, err := uc.reservationRepo.ExpirePending(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireReservations: sweep failed: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if expired > 0 {
		uc.logger.Info("ExpireReservations: expired %d stale pending reservations", expired)
	}

	return expired, nil
}
