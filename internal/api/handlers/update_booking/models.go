package update_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
// Отсутствующее поле оставляет текущее значение
type UpdateBookingRequest struct {
	ServiceIDs []int64 `json:"service_ids,omitempty"`
	DateTime   *string `json:"date_time,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) *updateBooking.Request {
	return &updateBooking.Request{
		BookingID:  bookingID,
		ServiceIDs: r.ServiceIDs,
		DateTime:   r.DateTime,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *models.BookingResponse {
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
