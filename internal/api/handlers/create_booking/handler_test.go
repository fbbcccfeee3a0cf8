package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeUseCase struct {
	err  error
	last *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	loc, _ := time.LoadLocation("Europe/Istanbul")
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)
	return &createBooking.Response{
		ID:     11,
		UserID: req.UserID,
		Services: []domain.Service{
			{ID: 1, Name: "Haircut", Worktime: types.NewWorktime(1, 0, 0), Price: decimal.RequireFromString("20")},
		},
		DateTime:  start,
		EndTime:   start.Add(time.Hour),
		CreatedAt: start.Add(-time.Hour),
	}, nil
}

func serve(h http.HandlerFunc, principal *domain.Principal, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), *principal))
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_Create(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())

	rec := serve(h.Handle, &domain.Principal{UserID: 7}, `{"service_ids":[1],"date_time":"2025-03-10T10:00:00","notes":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.last)
	assert.Equal(t, int64(7), uc.last.UserID)
	assert.Equal(t, []int64{1}, uc.last.ServiceIDs)
	assert.Equal(t, "2025-03-10T10:00:00", uc.last.DateTime)

	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(11), body.ID)
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, 10, body.DateTime.Hour())
	require.Len(t, body.Services, 1)
	assert.Equal(t, "20.00", body.Services[0].Price)
}

func TestHandler_CreateRejections(t *testing.T) {
	user := &domain.Principal{UserID: 7}
	validBody := `{"service_ids":[1],"date_time":"2025-03-10T10:00:00"}`

	tests := []struct {
		name       string
		principal  *domain.Principal
		body       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"no principal", nil, validBody, nil, http.StatusUnauthorized, handlers.KindUnauthorized},
		{"bad json", user, `{"service_ids":`, nil, http.StatusBadRequest, handlers.KindInvalidInput},
		{"unknown field", user, `{"service_ids":[1],"date_time":"x","start":"y"}`, nil, http.StatusBadRequest, handlers.KindInvalidInput},
		{"foreign user_id", user, `{"user_id":8,"service_ids":[1],"date_time":"x"}`, nil, http.StatusBadRequest, handlers.KindInvalidInput},
		{"invalid input", user, validBody, createBooking.ErrInvalidInput, http.StatusBadRequest, handlers.KindInvalidInput},
		{"invalid services", user, validBody, allocator.ErrInvalidServices, http.StatusBadRequest, handlers.KindInvalidServices},
		{"empty booking", user, validBody, allocator.ErrEmptyBooking, http.StatusBadRequest, handlers.KindEmptyBooking},
		{"past booking", user, validBody, allocator.ErrPastBooking, http.StatusBadRequest, handlers.KindPastBooking},
		{"no available slot", user, validBody, allocator.ErrNoAvailableSlot, http.StatusBadRequest, handlers.KindNoAvailableSlot},
		{"slot conflict", user, validBody, allocator.ErrSlotConflict, http.StatusConflict, handlers.KindSlotConflict},
		{"internal", user, validBody, allocator.ErrInternal, http.StatusInternalServerError, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop())
			rec := serve(h.Handle, tt.principal, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}

func TestHandler_CreateOnBehalf(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())
	admin := &domain.Principal{UserID: 1, IsAdmin: true}

	rec := serve(h.HandleAdmin, admin, `{"service_ids":[1],"date_time":"2025-03-10T10:00:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "user_id is required")

	rec = serve(h.HandleAdmin, admin, `{"user_id":42,"service_ids":[1],"date_time":"2025-03-10T10:00:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.last.UserID)
}
