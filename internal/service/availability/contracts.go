package availability

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	HasOverlap(ctx context.Context, day types.Date, start, end types.TimeString, excludeID *int64) (bool, error)
	Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	Update(ctx context.Context, window *domain.AvailabilityWindow) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error)
	List(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
