package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Ping(context.Background(), client))
	return s, client
}

func TestSettingsCache(t *testing.T) {
	s, client := newRedis(t)
	c := NewSettingsCache(client, time.Minute)
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		got, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		setting := &domain.TimezoneSetting{
			ID:        domain.TimezoneSettingID,
			Timezone:  "Europe/Moscow",
			UpdatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, c.Set(ctx, setting))

		got, err := c.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Europe/Moscow", got.Timezone)
		assert.True(t, setting.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("Expires", func(t *testing.T) {
		s.FastForward(2 * time.Minute)
		got, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, &domain.TimezoneSetting{ID: 1, Timezone: "UTC"}))
		require.NoError(t, c.Invalidate(ctx))
		got, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("RedisDown", func(t *testing.T) {
		s.Close()
		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, ErrCache)
	})
}

func TestRedisLimiter(t *testing.T) {
	s, client := newRedis(t)
	l := NewRedisLimiter(client, 2, time.Second)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = l.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, allowed, "keys are limited independently")

	s.FastForward(2 * time.Second)
	allowed, err = l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(1, time.Hour, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := l.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = l.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, allowed)
}
