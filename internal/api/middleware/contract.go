package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Authenticator проверяет bearer токен и возвращает вызывающего
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// Limiter ограничитель частоты запросов по ключу
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MetricsCollector приёмник HTTP метрик
type MetricsCollector interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
