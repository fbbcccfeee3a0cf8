package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingServiceIDs = "service_ids обязателен"
	msgInvalidServiceIDs = "некорректный список service_ids"
	msgInvalidServices   = "одна или несколько услуг не существуют"
	msgEmptyBooking      = "выбранные услуги имеют нулевую длительность"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: date (required, YYYY-MM-DD), service_ids (required, 1,2,3 или повторяющийся параметр)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDs, err := handlers.QueryIDList(r, "service_ids")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid service IDs: %v", err)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.KindInvalidInput, msgInvalidServiceIDs, handlers.FieldServiceIDs)
		return
	}
	if len(serviceIDs) == 0 {
		h.logger.Warn("GET /availability/slots - Missing service IDs")
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.KindEmptyBooking, msgMissingServiceIDs, handlers.FieldServiceIDs)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, serviceIDs)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidServices):
			h.logger.Warn("GET /availability/slots - Unknown services: service_ids=%v", serviceIDs)
			handlers.RespondRejection(w, http.StatusBadRequest, handlers.KindInvalidServices, msgInvalidServices, handlers.FieldServiceIDs)

		case errors.Is(err, getAvailableSlots.ErrEmptyBooking):
			h.logger.Warn("GET /availability/slots - Zero duration: service_ids=%v", serviceIDs)
			handlers.RespondRejection(w, http.StatusBadRequest, handlers.KindEmptyBooking, msgEmptyBooking, handlers.FieldServiceIDs)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability/slots - Failed to get slots: date=%s, service_ids=%v, error=%v",
				dateStr, serviceIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/slots - Slots retrieved successfully: date=%s, service_ids=%v, slots_count=%d",
		dateStr, serviceIDs, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
