package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const settingsKey = "reservation:settings:timezone"

// NewRedisClient создает клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// SettingsCache кэш строки настроек часового пояса
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsCache создает кэш настроек
func NewSettingsCache(client *redis.Client, ttl time.Duration) *SettingsCache {
	return &SettingsCache{client: client, ttl: ttl}
}

type cachedSetting struct {
	ID        int64     `json:"id"`
	Timezone  string    `json:"timezone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get возвращает настройку из кэша, nil если её там нет
func (c *SettingsCache) Get(ctx context.Context) (*domain.TimezoneSetting, error) {
	val, err := c.client.Get(ctx, settingsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get settings: %w", ErrCache, err)
	}

	var cached cachedSetting
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, fmt.Errorf("%w: unmarshal settings: %w", ErrCache, err)
	}

	return &domain.TimezoneSetting{
		ID:        cached.ID,
		Timezone:  cached.Timezone,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

// Set сохраняет настройку с TTL
func (c *SettingsCache) Set(ctx context.Context, setting *domain.TimezoneSetting) error {
	data, err := json.Marshal(cachedSetting{
		ID:        setting.ID,
		Timezone:  setting.Timezone,
		UpdatedAt: setting.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal settings: %w", ErrCache, err)
	}

	if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set settings: %w", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет настройку из кэша
func (c *SettingsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("%w: delete settings: %w", ErrCache, err)
	}
	return nil
}
