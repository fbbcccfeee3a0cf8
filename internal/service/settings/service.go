package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
)

// Service сервис настроек часового пояса
type Service struct {
	repo            SettingsRepository
	cache           SettingsCache
	defaultTimezone string
	logger          Logger
}

// NewService создает сервис настроек
// cache может быть nil, тогда каждое чтение идёт в БД
func NewService(repo SettingsRepository, cache SettingsCache, defaultTimezone string, logger Logger) *Service {
	return &Service{
		repo:            repo,
		cache:           cache,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Current возвращает строку настроек, создавая её при первом обращении
// Ошибки кэша не прерывают чтение
func (s *Service) Current(ctx context.Context) (*domain.TimezoneSetting, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Current: cache read failed: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	setting, err := s.repo.GetOrCreate(ctx, s.defaultTimezone)
	if err != nil {
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, setting); err != nil {
			s.logger.Warn("Current: cache write failed: %v", err)
		}
	}

	return setting, nil
}

// GetTimezone возвращает текущий часовой пояс
func (s *Service) GetTimezone(ctx context.Context) (*models.TimezoneResponse, error) {
	setting, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSetting(setting), nil
}

// UpdateTimezone меняет часовой пояс (только администратор)
func (s *Service) UpdateTimezone(ctx context.Context, req *models.UpdateTimezoneRequest) (*models.TimezoneResponse, error) {
	timezone := strings.TrimSpace(req.Timezone)
	s.logger.Info("UpdateTimezone: setting timezone=%q", timezone)

	if timezone == "" || len(timezone) > domain.MaxTimezoneLength {
		s.logger.Warn("UpdateTimezone: invalid timezone length=%d", len(timezone))
		return nil, ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		s.logger.Warn("UpdateTimezone: unknown timezone=%q: %v", timezone, err)
		return nil, ErrInvalidTimezone
	}

	setting, err := s.repo.UpdateTimezone(ctx, timezone)
	if err != nil {
		s.logger.Error("UpdateTimezone: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateTimezone - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("UpdateTimezone: cache invalidation failed: %v", err)
		}
	}

	s.logger.Info("UpdateTimezone: timezone set to %s", setting.Timezone)
	return models.FromDomainSetting(setting), nil
}
