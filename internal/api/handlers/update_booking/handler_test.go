package update_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeUseCase struct {
	err error
	got *updateBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &updateBooking.Response{
		ID:       req.BookingID,
		UserID:   7,
		DateTime: start,
		EndTime:  start.Add(time.Hour),
	}, nil
}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/bookings/"+id, strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"bookingId": id})
}

func TestHandler_UpdatesBooking(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("5", `{"date_time":"2025-03-10T12:00:00"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.BookingID)
	require.NotNil(t, uc.got.DateTime)
	assert.Equal(t, "2025-03-10T12:00:00", *uc.got.DateTime)
	assert.Nil(t, uc.got.ServiceIDs)
	assert.Nil(t, uc.got.Notes)

	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, int64(7), body.UserID)
}

func TestHandler_BadInput(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.Nop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("abc", `{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("5", `{"unknown":1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"not found", updateBooking.ErrBookingNotFound, http.StatusNotFound, handlers.KindNotFound},
		{"invalid input", updateBooking.ErrInvalidInput, http.StatusBadRequest, handlers.KindInvalidInput},
		{"conflict", fmt.Errorf("%w: overlaps booking 3", allocator.ErrSlotConflict), http.StatusConflict, handlers.KindSlotConflict},
		{"outside window", allocator.ErrNoAvailableSlot, http.StatusBadRequest, handlers.KindNoAvailableSlot},
		{"internal", updateBooking.ErrInternal, http.StatusInternalServerError, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("5", `{"service_ids":[1,2]}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}
