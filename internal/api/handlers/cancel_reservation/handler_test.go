package cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyukraeyo/reservation-app-sub000/internal/api/middleware"
	"github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations"
	cancelReservation "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/cancel_reservation"
)

type fakeUseCase struct {
	gotReq *cancelReservation.Request
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelReservation.Request) error {
	f.gotReq = req
	return f.err
}

type fakeStaffCanceller struct {
	called bool
	gotID  int64
	err    error
}

func (f *fakeStaffCanceller) CancelByStaff(_ context.Context, reservationID int64, _ int64) error {
	f.called = true
	f.gotID = reservationID
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, staff *fakeStaffCanceller, reservationID, userID string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(uc, staff, nopLogger{})

	r := mux.NewRouter()
	r.Handle("/api/v1/reservations/{reservationId}/cancel",
		middleware.Auth(http.HandlerFunc(handler.Handle))).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+reservationID+"/cancel", nil)
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

func TestCancelReservationHandler(t *testing.T) {
	t.Run("owner cancel goes through the usecase only", func(t *testing.T) {
		uc := &fakeUseCase{}
		staff := &fakeStaffCanceller{}

		rec := doRequest(t, uc, staff, "7", "42")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, uc.gotReq)
		assert.Equal(t, int64(7), uc.gotReq.ReservationID)
		assert.Equal(t, int64(42), uc.gotReq.UserID)
		assert.False(t, staff.called)
		assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	})

	t.Run("non-owner falls through to the staff path", func(t *testing.T) {
		uc := &fakeUseCase{err: cancelReservation.ErrAccessDenied}
		staff := &fakeStaffCanceller{}

		rec := doRequest(t, uc, staff, "7", "1001")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, staff.called)
		assert.Equal(t, int64(7), staff.gotID)
	})

	t.Run("denied on both paths is forbidden", func(t *testing.T) {
		uc := &fakeUseCase{err: cancelReservation.ErrAccessDenied}
		staff := &fakeStaffCanceller{err: reservations.ErrAccessDenied}

		rec := doRequest(t, uc, staff, "7", "43")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff path errors map like usecase errors", func(t *testing.T) {
		tests := []struct {
			staffErr error
			want     int
		}{
			{reservations.ErrReservationNotFound, http.StatusNotFound},
			{reservations.ErrAlreadyFinalized, http.StatusConflict},
		}

		for _, tt := range tests {
			uc := &fakeUseCase{err: cancelReservation.ErrAccessDenied}
			staff := &fakeStaffCanceller{err: tt.staffErr}

			rec := doRequest(t, uc, staff, "7", "1001")
			assert.Equal(t, tt.want, rec.Code, "error=%v", tt.staffErr)
		}
	})

	t.Run("usecase errors map to statuses", func(t *testing.T) {
		tests := []struct {
			err  error
			want int
		}{
			{cancelReservation.ErrReservationNotFound, http.StatusNotFound},
			{cancelReservation.ErrAlreadyStarted, http.StatusConflict},
			{cancelReservation.ErrAlreadyFinalized, http.StatusConflict},
			{cancelReservation.ErrInvalidInput, http.StatusBadRequest},
			{cancelReservation.ErrInternal, http.StatusInternalServerError},
		}

		for _, tt := range tests {
			staff := &fakeStaffCanceller{}
			rec := doRequest(t, &fakeUseCase{err: tt.err}, staff, "7", "42")
			assert.Equal(t, tt.want, rec.Code, "error=%v", tt.err)
			assert.False(t, staff.called)
		}
	})

	t.Run("invalid reservation id", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := doRequest(t, uc, &fakeStaffCanceller{}, "abc", "42")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.gotReq)
	})
}
