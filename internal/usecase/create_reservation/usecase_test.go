package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
	"github.com/hyukraeyo/reservation-app-sub000/internal/domain"
	catalogRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/catalog"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/txmanager"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/types"
)

// fakeStore is an in-memory reservation store guarded by a mutex
type fakeStore struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	nextID       int64
	queryErr     error
}

func (f *fakeStore) QueryByDateRange(_ context.Context, start, end time.Time, excludeStatuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.StartAt.Before(start) || res.StartAt.After(end) {
			continue
		}
		excluded := false
		for _, st := range excludeStatuses {
			if res.Status == st {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertPending(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *res
	stored.ID = f.nextID
	stored.Status = domain.StatusPending
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	f.reservations = append(f.reservations, &stored)
	return &stored, nil
}

// fakeTxManager serializes the commit callbacks with a mutex, mimicking the
// one-at-a-time outcome serializable transactions give overlapping writers
type fakeTxManager struct {
	mu  sync.Mutex
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type notifyCall struct {
	userID int64
	title  string
}

type fakeNotifier struct {
	mu        sync.Mutex
	notifies  []notifyCall
	reminders []time.Time
	err       error
}

func (f *fakeNotifier) Notify(_ context.Context, targetUserID int64, title, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifies = append(f.notifies, notifyCall{userID: targetUserID, title: title})
	return f.err
}

func (f *fakeNotifier) ScheduleReminder(_ context.Context, _ int64, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders = append(f.reminders, fireAt)
	return f.err
}

type fakeCatalog struct {
	services map[int64]*domain.SalonService
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.SalonService, error) {
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

func testCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[int64]*domain.SalonService{
		1: {ID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25000},
		2: {ID: 2, Name: "Hair coloring", DurationMinutes: 90, Price: 80000},
	}}
}

func mustClock(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestCreateReservation(t *testing.T) {
	date := timegrid.NewLocalDate(2025, time.October, 15)
	now := timegrid.Combine(date, mustClock(t, "09:00"))
	staffIDs := []int64{1001, 1002}

	newUC := func(store *fakeStore, notifier *fakeNotifier, nowAt time.Time) *UseCase {
		return NewUseCase(store, testCatalog(), notifier, &fakeTxManager{}, clock.NewFixed(nowAt), staffIDs, nopLogger{})
	}

	t.Run("commits a pending reservation", func(t *testing.T) {
		store := &fakeStore{}
		notifier := &fakeNotifier{}
		uc := newUC(store, notifier, now)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:    42,
			ServiceID: 1,
			Date:      date,
			StartTime: mustClock(t, "10:30"),
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, int64(42), resp.UserID)
		assert.Equal(t, 30, resp.DurationMinutes)
		assert.Equal(t, "Haircut", resp.ServiceName)
		assert.Equal(t, timegrid.Combine(date, mustClock(t, "10:30")), resp.StartAt)

		// reminder one hour before the appointment
		require.Len(t, notifier.reminders, 1)
		assert.Equal(t, resp.StartAt.Add(-time.Hour), notifier.reminders[0])

		// owner plus every staff member
		require.Len(t, notifier.notifies, 3)
		assert.Equal(t, int64(42), notifier.notifies[0].userID)
		assert.Equal(t, int64(1001), notifier.notifies[1].userID)
		assert.Equal(t, int64(1002), notifier.notifies[2].userID)
	})

	t.Run("rejects an occupied slot", func(t *testing.T) {
		store := &fakeStore{}
		uc := newUC(store, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "10:30"),
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{
			UserID: 43, ServiceID: 1, Date: date, StartTime: mustClock(t, "10:30"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("rejects overlap with a longer reservation", func(t *testing.T) {
		store := &fakeStore{}
		uc := newUC(store, &fakeNotifier{}, now)

		// 90 minutes starting 11:00 covers 11:00, 11:30, 12:00
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 2, Date: date, StartTime: mustClock(t, "11:00"),
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{
			UserID: 43, ServiceID: 1, Date: date, StartTime: mustClock(t, "12:00"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)

		_, err = uc.Execute(context.Background(), &Request{
			UserID: 43, ServiceID: 1, Date: date, StartTime: mustClock(t, "12:30"),
		})
		assert.NoError(t, err)
	})

	t.Run("concurrent commits resolve to one winner", func(t *testing.T) {
		store := &fakeStore{}
		uc := newUC(store, &fakeNotifier{}, now)

		req := func(userID int64) *Request {
			return &Request{UserID: userID, ServiceID: 1, Date: date, StartTime: mustClock(t, "14:00")}
		}

		results := make(chan error, 2)
		var wg sync.WaitGroup
		for _, userID := range []int64{42, 43} {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_, err := uc.Execute(context.Background(), req(id))
				results <- err
			}(userID)
		}
		wg.Wait()
		close(results)

		var successes, conflicts int
		for err := range results {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, conflicts)

		store.mu.Lock()
		defer store.mu.Unlock()
		assert.Len(t, store.reservations, 1)
	})

	t.Run("cancelled reservations free their slot", func(t *testing.T) {
		startAt := timegrid.Combine(date, mustClock(t, "15:00"))
		store := &fakeStore{reservations: []*domain.Reservation{{
			ID: 1, UserID: 7, ServiceID: 1,
			StartAt: startAt, DurationMinutes: 30,
			Status: domain.StatusCancelled,
		}}, nextID: 1}
		uc := newUC(store, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "15:00"),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects a non-grid start time", func(t *testing.T) {
		uc := newUC(&fakeStore{}, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "10:15"),
		})
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)

		_, err = uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "09:30"),
		})
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("rejects a start whose tail crosses closing", func(t *testing.T) {
		uc := newUC(&fakeStore{}, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 2, Date: date, StartTime: mustClock(t, "19:30"),
		})
		assert.ErrorIs(t, err, ErrOutsideBusinessHours)

		// 19:00 + 90min ends exactly at close
		_, err = uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 2, Date: date, StartTime: mustClock(t, "19:00"),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects a past start", func(t *testing.T) {
		lateNow := timegrid.Combine(date, mustClock(t, "12:00"))
		uc := newUC(&fakeStore{}, &fakeNotifier{}, lateNow)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "11:30"),
		})
		assert.ErrorIs(t, err, ErrTooLateToBook)

		// a start equal to now is also too late
		_, err = uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "12:00"),
		})
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("unknown service", func(t *testing.T) {
		uc := newUC(&fakeStore{}, &fakeNotifier{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 99, Date: date, StartTime: mustClock(t, "10:30"),
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("notifier failure does not fail the commit", func(t *testing.T) {
		store := &fakeStore{}
		notifier := &fakeNotifier{err: errors.New("notify service is down")}
		uc := newUC(store, notifier, now)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "10:30"),
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
	})

	t.Run("reminder is skipped when its instant already passed", func(t *testing.T) {
		// booking 30 minutes before the start leaves the reminder in the past
		closeNow := timegrid.Combine(date, mustClock(t, "10:00"))
		notifier := &fakeNotifier{}
		uc := newUC(&fakeStore{}, notifier, closeNow)

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "10:30"),
		})
		require.NoError(t, err)
		assert.Empty(t, notifier.reminders)
	})

	t.Run("serialization conflict maps to slot not available", func(t *testing.T) {
		uc := NewUseCase(&fakeStore{}, testCatalog(), &fakeNotifier{},
			&fakeTxManager{err: txmanager.ErrSerializationFailure},
			clock.NewFixed(now), staffIDs, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 42, ServiceID: 1, Date: date, StartTime: mustClock(t, "10:30"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}
