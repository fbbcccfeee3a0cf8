package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgMissingUserID      = "user_id обязателен при бронировании от имени пользователя"
	msgUserIDNotAllowed   = "user_id можно указывать только в административном запросе"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Бронирование создаётся на вызывающего пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.UserID != nil && *req.UserID != principal.UserID {
		h.logger.Warn("POST /bookings - user_id=%d supplied by user=%d", *req.UserID, principal.UserID)
		handlers.RespondBadRequest(w, msgUserIDNotAllowed)
		return
	}

	h.create(w, r, "POST /bookings", &req, principal.UserID)
}

// HandleAdmin POST /api/v1/admin/bookings
// Администратор создаёт бронирование от имени user_id
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.UserID == nil || *req.UserID <= 0 {
		h.logger.Warn("POST /admin/bookings - Missing user_id")
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.KindInvalidInput, msgMissingUserID, "user_id")
		return
	}

	h.create(w, r, "POST /admin/bookings", &req, *req.UserID)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, route string, req *CreateBookingRequest, userID int64) {
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		if handlers.RespondAllocationError(w, err) {
			h.logger.Warn("%s - Booking rejected: user_id=%d, date_time=%s, error=%v", route, userID, req.DateTime, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", route, userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to create booking: user_id=%d, error=%v", route, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%d, user_id=%d", route, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
