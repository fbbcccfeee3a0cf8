package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidCategoryID  = "некорректный ID категории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные"
	msgServiceNotFound    = "услуга не найдена"
	msgCategoryNotFound   = "категория не найдена"
	msgCategoryExists     = "категория с таким именем уже существует"
	msgServiceInUse       = "услуга используется в бронированиях и не может быть изменена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListServices GET /api/v1/services и GET /api/v1/admin/services
// Query params: category_id (опционально)
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.QueryID(r, "category_id")
	if err != nil {
		h.logger.Warn("GET /services - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	result, err := h.service.ListServices(r.Context(), categoryID)
	if err != nil {
		h.respondError(w, "GET /services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateService POST /api/v1/admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created successfully: service_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateService PUT /api/v1/admin/services/{serviceId}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateService(r.Context(), serviceID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated successfully: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteService DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.DeleteService(r.Context(), serviceID); err != nil {
		h.respondError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted successfully: service_id=%d", serviceID)
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories GET /api/v1/categories и GET /api/v1/admin/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, "GET /categories", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateCategory POST /api/v1/admin/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/categories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/categories", err)
		return
	}

	h.logger.Info("POST /admin/categories - Category created successfully: category_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateCategory PUT /api/v1/admin/categories/{categoryId}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.PathID(r, "categoryId")
	if err != nil {
		h.logger.Warn("PUT /admin/categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/categories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCategory(r.Context(), categoryID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/categories/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/categories/{id} - Category updated successfully: category_id=%d", categoryID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteCategory DELETE /api/v1/admin/categories/{categoryId}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.PathID(r, "categoryId")
	if err != nil {
		h.logger.Warn("DELETE /admin/categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		h.respondError(w, "DELETE /admin/categories/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/categories/{id} - Category deleted successfully: category_id=%d", categoryID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: %v", route, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found: %v", route, err)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, catalog.ErrCategoryExists):
		h.logger.Warn("%s - Category exists: %v", route, err)
		handlers.RespondRejection(w, http.StatusConflict, handlers.KindCategoryExists, msgCategoryExists, "name")

	case errors.Is(err, catalog.ErrServiceInUse):
		h.logger.Warn("%s - Service in use: %v", route, err)
		handlers.RespondRejection(w, http.StatusConflict, handlers.KindServiceInUse, msgServiceInUse, "")

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
