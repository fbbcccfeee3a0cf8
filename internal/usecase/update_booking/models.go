package update_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на изменение бронирования администратором
// nil поле означает "оставить как есть"
type Request struct {
	BookingID  int64
	ServiceIDs []int64
	DateTime   *string
	Notes      *string
}

// Response модель ответа с изменённым бронированием
type Response struct {
	ID        int64
	UserID    int64
	Services  []domain.Service
	DateTime  time.Time // в зоне настроек
	EndTime   time.Time // в зоне настроек
	Notes     *string
	CreatedAt time.Time
}

func fromDomainBooking(b *domain.Booking, loc *time.Location) *Response {
	return &Response{
		ID:        b.ID,
		UserID:    b.UserID,
		Services:  b.Services,
		DateTime:  b.DateTime.In(loc),
		EndTime:   b.EndTime.In(loc),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt.In(loc),
	}
}
