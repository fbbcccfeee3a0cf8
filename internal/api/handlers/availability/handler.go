package availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability/models"
)

const (
	msgInvalidWindowID    = "некорректный ID окна"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidWindow      = "некорректное окно: начало должно быть раньше конца"
	msgOverlappingWindow  = "окно пересекается с другим окном этого дня"
	msgNotFound           = "окно не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/availability
// Пользователю видны только открытые окна
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /availability", true)
}

// AdminList GET /api/v1/admin/availability
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /admin/availability", false)
}

// Create POST /api/v1/admin/availability
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/availability", err)
		return
	}

	h.logger.Info("POST /admin/availability - Window created successfully: window_id=%d, date=%s",
		result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/availability/{windowId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		h.logger.Warn("PUT /admin/availability/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	var req models.UpdateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWindow(r.Context(), windowID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/availability/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/availability/{id} - Window updated successfully: window_id=%d", windowID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/admin/availability/{windowId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		h.logger.Warn("GET /admin/availability/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	result, err := h.service.GetWindow(r.Context(), windowID)
	if err != nil {
		h.respondError(w, "GET /admin/availability/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/availability/{windowId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		h.logger.Warn("DELETE /admin/availability/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), windowID); err != nil {
		h.respondError(w, "DELETE /admin/availability/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/availability/{id} - Window deleted successfully: window_id=%d", windowID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, onlyActive bool) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListWindows(r.Context(), &models.ListWindowsRequest{
		From:       from,
		To:         to,
		OnlyActive: onlyActive,
	})
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Windows retrieved successfully: count=%d", route, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, availability.ErrWindowNotFound):
		h.logger.Warn("%s - Window not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, availability.ErrOverlappingWindow):
		h.logger.Warn("%s - Overlapping window: %v", route, err)
		handlers.RespondRejection(w, http.StatusConflict, handlers.KindOverlappingWindow, msgOverlappingWindow, "")

	case errors.Is(err, availability.ErrInvalidWindow):
		h.logger.Warn("%s - Invalid window: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidWindow)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
