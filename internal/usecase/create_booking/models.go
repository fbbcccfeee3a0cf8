package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64   // владелец бронирования
	ServiceIDs []int64 // выбранные услуги, порядок сохраняется
	DateTime   string  // начало: RFC3339 или настенное время в зоне настроек
	Notes      *string // дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
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
