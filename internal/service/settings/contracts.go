package settings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, defaultTimezone string) (*domain.TimezoneSetting, error)
	UpdateTimezone(ctx context.Context, timezone string) (*domain.TimezoneSetting, error)
}

// SettingsCache интерфейс кэша настроек (опционально)
type SettingsCache interface {
	Get(ctx context.Context) (*domain.TimezoneSetting, error)
	Set(ctx context.Context, setting *domain.TimezoneSetting) error
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
