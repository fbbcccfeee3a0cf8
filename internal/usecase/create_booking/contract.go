package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
)

// Allocator интерфейс аллокатора слотов
type Allocator interface {
	Allocate(ctx context.Context, c allocator.Candidate) (*domain.Booking, error)
}

// LocationResolver интерфейс получения часового пояса из настроек
type LocationResolver interface {
	Location(ctx context.Context) (*time.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
