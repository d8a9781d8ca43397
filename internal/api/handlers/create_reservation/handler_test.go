package create_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyukraeyo/reservation-app-sub000/internal/api/middleware"
	"github.com/hyukraeyo/reservation-app-sub000/internal/timegrid"
	createReservation "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	gotReq *createReservation.Request
	resp   *createReservation.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestCreateReservationHandler(t *testing.T) {
	validBody := `{"serviceId": 1, "date": "2025-10-15", "startTime": "10:30"}`

	t.Run("creates a reservation", func(t *testing.T) {
		startAt := time.Date(2025, time.October, 15, 1, 30, 0, 0, time.UTC)
		uc := &fakeUseCase{resp: &createReservation.Response{
			ID:              7,
			UserID:          42,
			ServiceID:       1,
			Date:            timegrid.NewLocalDate(2025, time.October, 15),
			StartTime:       "10:30",
			StartAt:         startAt,
			DurationMinutes: 30,
			Status:          "pending",
			ServiceName:     "Haircut",
			ServicePrice:    25000,
			CreatedAt:       startAt,
			UpdatedAt:       startAt,
		}}

		rec := doRequest(t, uc, validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		// the authenticated user is taken from the header, not the body
		require.NotNil(t, uc.gotReq)
		assert.Equal(t, int64(42), uc.gotReq.UserID)
		assert.Equal(t, "10:30", uc.gotReq.StartTime.String())
		assert.Contains(t, rec.Body.String(), `"id":7`)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, `{"serviceId": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, `{"serviceId": 1, "date": "2025-10-15", "startTime": "10:30", "userId": 43}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date and time formats", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, `{"serviceId": 1, "date": "15.10.2025", "startTime": "10:30"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, &fakeUseCase{}, `{"serviceId": 1, "date": "2025-10-15", "startTime": "1030"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("usecase errors map to statuses", func(t *testing.T) {
		tests := []struct {
			err  error
			want int
		}{
			{createReservation.ErrSlotNotAvailable, http.StatusConflict},
			{createReservation.ErrServiceNotFound, http.StatusNotFound},
			{createReservation.ErrInvalidTimeSlot, http.StatusBadRequest},
			{createReservation.ErrOutsideBusinessHours, http.StatusBadRequest},
			{createReservation.ErrTooLateToBook, http.StatusBadRequest},
			{createReservation.ErrInvalidInput, http.StatusBadRequest},
			{createReservation.ErrInternal, http.StatusInternalServerError},
		}

		for _, tt := range tests {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.want, rec.Code, "error=%v", tt.err)
		}
	})
}
