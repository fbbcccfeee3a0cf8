package allocator

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
}

// AvailabilityRepository интерфейс индекса окон доступности
type AvailabilityRepository interface {
	HasOpenWindow(ctx context.Context, day types.Date, start, end types.TimeString) (bool, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	LockDay(ctx context.Context, day types.Date) error
	HasConflict(ctx context.Context, start, end time.Time, excludeID *int64) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsCollector счётчик исходов бронирования
type MetricsCollector interface {
	IncBookingOutcome(outcome string)
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
