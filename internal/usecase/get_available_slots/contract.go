package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	List(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListIntervals возвращает интервалы бронирований, пересекающиеся с [from, to)
	ListIntervals(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// LocationResolver интерфейс получения часового пояса из настроек
type LocationResolver interface {
	Location(ctx context.Context) (*time.Location, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
