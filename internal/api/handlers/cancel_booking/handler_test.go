package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeService struct {
	err       error
	principal domain.Principal
	id        int64
}

func (f *fakeService) Delete(_ context.Context, principal domain.Principal, id int64) error {
	f.principal, f.id = principal, id
	return f.err
}

func serve(h *Handler, bookingID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{UserID: 7}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Cancel(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.Nop()), "5")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(5), svc.id)
	assert.Equal(t, int64(7), svc.principal.UserID)
}

func TestHandler_CancelErrors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"bad id", "abc", nil, http.StatusBadRequest, handlers.KindInvalidInput},
		{"not found", "5", bookings.ErrBookingNotFound, http.StatusNotFound, handlers.KindNotFound},
		{"not owner", "5", bookings.ErrNotOwnerOrAdmin, http.StatusForbidden, handlers.KindNotOwnerOrAdmin},
		{"too late", "5", bookings.ErrCancellationWindowExpired, http.StatusBadRequest, handlers.KindCancellationWindowExpired},
		{"internal", "5", bookings.ErrInternal, http.StatusInternalServerError, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, logger.Nop()), tt.id)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}
