package create_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// UserID учитывается только в административном маршруте
type CreateBookingRequest struct {
	UserID     *int64  `json:"user_id,omitempty"`
	ServiceIDs []int64 `json:"service_ids"`
	DateTime   string  `json:"date_time"` // "2025-03-10T10:00:00+03:00" или "2025-03-10T10:00:00"
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:     userID,
		ServiceIDs: r.ServiceIDs,
		DateTime:   r.DateTime,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(&domain.Booking{
		ID:        resp.ID,
		UserID:    resp.UserID,
		Services:  resp.Services,
		DateTime:  resp.DateTime,
		EndTime:   resp.EndTime,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt,
	}, resp.DateTime.Location())
}
