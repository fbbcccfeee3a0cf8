package update_timezone

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimezone    = "неизвестный часовой пояс"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/settings/timezone
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTimezoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/timezone - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateTimezone(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidTimezone):
			h.logger.Warn("PUT /admin/settings/timezone - Invalid timezone: %q", req.Timezone)
			handlers.RespondRejection(w, http.StatusBadRequest, handlers.KindInvalidInput, msgInvalidTimezone, "timezone")

		default:
			h.logger.Error("PUT /admin/settings/timezone - Failed to update timezone: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings/timezone - Timezone updated successfully: timezone=%s", result.Timezone)
	handlers.RespondJSON(w, http.StatusOK, result)
}
