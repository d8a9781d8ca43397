package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	catalogRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/catalog"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) QueryByDateRange(_ context.Context, start, end time.Time, _ []domain.ReservationStatus) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if !res.StartAt.Before(start) && !res.StartAt.After(end) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.SalonService
	err      error
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.SalonService, error) {
	if f.err != nil {
		return nil, f.err
	}
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func localInstant(t *testing.T, date timegrid.LocalDate, clockTime string) time.Time {
	t.Helper()
	ts, err := types.NewTimeStringFromString(clockTime)
	require.NoError(t, err)
	return timegrid.Combine(date, ts)
}

func activeReservation(t *testing.T, date timegrid.LocalDate, start string, durationMinutes int) *domain.Reservation {
	t.Helper()
	return &domain.Reservation{
		ID:              1,
		UserID:          42,
		ServiceID:       1,
		StartAt:         localInstant(t, date, start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusPending,
	}
}

func slotMap(resp *Response) map[string]bool {
	m := make(map[string]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		m[s.StartTime.String()] = s.Available
	}
	return m
}

func TestGetAvailableSlots(t *testing.T) {
	date := timegrid.NewLocalDate(2025, time.October, 15)
	// 09:00 local, before opening
	now := localInstant(t, date, "09:00")

	catalog := &fakeCatalogRepo{services: map[int64]*domain.SalonService{
		1: {ID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25000},
		2: {ID: 2, Name: "Styling", DurationMinutes: 60, Price: 40000},
		3: {ID: 3, Name: "Hair coloring", DurationMinutes: 90, Price: 80000},
	}}

	t.Run("empty day makes every slot available", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, catalog, clock.NewFixed(now), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Date: date})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 21)
		assert.Equal(t, 30, resp.DurationMinutes)

		for _, slot := range resp.Slots {
			assert.True(t, slot.Available, "slot %s", slot.StartTime)
		}
	})

	t.Run("existing reservations occupy their expanded blocks", func(t *testing.T) {
		repo := &fakeReservationRepo{reservations: []*domain.Reservation{
			activeReservation(t, date, "10:00", 30),
			activeReservation(t, date, "11:00", 60),
		}}
		uc := NewUseCase(repo, catalog, clock.NewFixed(now), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Date: date})
		require.NoError(t, err)

		slots := slotMap(resp)
		assert.False(t, slots["10:00"])
		assert.True(t, slots["10:30"]) // free gap between the two reservations
		assert.False(t, slots["11:00"])
		assert.False(t, slots["11:30"])
		assert.True(t, slots["12:00"])
	})

	t.Run("longer service needs every covered block free", func(t *testing.T) {
		repo := &fakeReservationRepo{reservations: []*domain.Reservation{
			activeReservation(t, date, "10:00", 30),
			activeReservation(t, date, "11:00", 60),
		}}
		uc := NewUseCase(repo, catalog, clock.NewFixed(now), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 2, Date: date})
		require.NoError(t, err)

		// a 60-minute service starting 10:30 would collide with 11:00
		slots := slotMap(resp)
		assert.False(t, slots["10:30"])
		assert.True(t, slots["12:00"])
	})

	t.Run("cancelled reservations do not occupy blocks", func(t *testing.T) {
		cancelled := activeReservation(t, date, "10:00", 30)
		cancelled.Status = domain.StatusCancelled
		repo := &fakeReservationRepo{reservations: []*domain.Reservation{cancelled}}
		uc := NewUseCase(repo, catalog, clock.NewFixed(now), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Date: date})
		require.NoError(t, err)
		assert.True(t, slotMap(resp)["10:00"])
	})

	t.Run("slots at or before now are unavailable", func(t *testing.T) {
		midday := localInstant(t, date, "12:10")
		uc := NewUseCase(&fakeReservationRepo{}, catalog, clock.NewFixed(midday), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Date: date})
		require.NoError(t, err)

		slots := slotMap(resp)
		assert.False(t, slots["11:30"])
		assert.False(t, slots["12:00"])
		assert.True(t, slots["12:30"])
	})

	t.Run("tail slots never fit a long service", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, catalog, clock.NewFixed(now), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 3, Date: date})
		require.NoError(t, err)

		// 90 minutes must end by 20:30, so the last bookable start is 19:00
		slots := slotMap(resp)
		assert.True(t, slots["19:00"])
		assert.False(t, slots["19:30"])
		assert.False(t, slots["20:00"])
	})

	t.Run("unknown service", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, &fakeCatalogRepo{services: map[int64]*domain.SalonService{}}, clock.NewFixed(now), nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 99, Date: date})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, catalog, clock.NewFixed(now), nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 0, Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeReservationRepo{err: errors.New("connection refused")}
		uc := NewUseCase(repo, catalog, clock.NewFixed(now), nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
