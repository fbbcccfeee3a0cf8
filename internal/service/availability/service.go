package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	windowRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service сервис окон доступности
// Окна одного дня не пересекаются: проверка и запись выполняются в одной сериализуемой транзакции
type Service struct {
	repo      WindowRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис окон доступности
func NewService(repo WindowRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateWindow создает окно доступности (только администратор)
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	window := req.ToDomainWindow()
	s.logger.Info("CreateWindow: date=%s, %s-%s, available=%t", window.Date, window.StartTime, window.EndTime, window.IsAvailable)

	if err := validateWindow(window); err != nil {
		s.logger.Warn("CreateWindow: validation failed: %v", err)
		return nil, err
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.checkOverlap(txCtx, window, nil); err != nil {
			return err
		}

		created, err := s.repo.Create(txCtx, window)
		if err != nil {
			if errors.Is(err, windowRepo.ErrOverlap) {
				return ErrOverlappingWindow
			}
			return fmt.Errorf("%w: CreateWindow - repository error: %w", ErrInternal, err)
		}
		window = created
		return nil
	})
	if err != nil {
		return nil, s.logFailure("CreateWindow", err)
	}

	s.logger.Info("CreateWindow: successfully created window id=%d", window.ID)
	return models.FromDomainWindow(window), nil
}

// UpdateWindow изменяет окно доступности (только администратор)
func (s *Service) UpdateWindow(ctx context.Context, id int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("UpdateWindow: updating window id=%d", id)

	var window *domain.AvailabilityWindow
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, windowRepo.ErrWindowNotFound) {
				return ErrWindowNotFound
			}
			return fmt.Errorf("%w: UpdateWindow - get window: %w", ErrInternal, err)
		}

		req.Apply(existing)
		if err := validateWindow(existing); err != nil {
			return err
		}

		if err := s.checkOverlap(txCtx, existing, &existing.ID); err != nil {
			return err
		}

		if err := s.repo.Update(txCtx, existing); err != nil {
			switch {
			case errors.Is(err, windowRepo.ErrOverlap):
				return ErrOverlappingWindow
			case errors.Is(err, windowRepo.ErrWindowNotFound):
				return ErrWindowNotFound
			default:
				return fmt.Errorf("%w: UpdateWindow - repository error: %w", ErrInternal, err)
			}
		}
		window = existing
		return nil
	})
	if err != nil {
		return nil, s.logFailure("UpdateWindow", err)
	}

	s.logger.Info("UpdateWindow: successfully updated window id=%d", id)
	return models.FromDomainWindow(window), nil
}

// DeleteWindow удаляет окно доступности (только администратор)
// Существующие бронирования не затрагиваются
func (s *Service) DeleteWindow(ctx context.Context, id int64) error {
	s.logger.Info("DeleteWindow: deleting window id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deleted window id=%d", id)
	return nil
}

// GetWindow получает окно по ID
func (s *Service) GetWindow(ctx context.Context, id int64) (*models.WindowResponse, error) {
	window, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("GetWindow: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("GetWindow: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetWindow - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWindow(window), nil
}

// ListWindows получает окна за период
// Пользователям показываются только активные окна, администратору все
func (s *Service) ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("ListWindows: invalid range %s..%s", *req.From, *req.To)
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	windows, err := s.repo.List(ctx, domain.AvailabilityFilter{
		From:       req.From,
		To:         req.To,
		OnlyActive: req.OnlyActive,
	})
	if err != nil {
		s.logger.Error("ListWindows: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: found %d windows", len(windows))
	return models.FromDomainWindows(windows), nil
}

// checkOverlap отклоняет окно, пересекающееся с любым другим окном того же дня
func (s *Service) checkOverlap(ctx context.Context, window *domain.AvailabilityWindow, excludeID *int64) error {
	overlap, err := s.repo.HasOverlap(ctx, window.Date, window.StartTime, window.EndTime, excludeID)
	if err != nil {
		return fmt.Errorf("%w: check overlap: %w", ErrInternal, err)
	}
	if overlap {
		return ErrOverlappingWindow
	}
	return nil
}

func (s *Service) logFailure(op string, err error) error {
	switch {
	case errors.Is(err, ErrOverlappingWindow):
		s.logger.Warn("%s: window overlaps an existing window", op)
	case errors.Is(err, ErrWindowNotFound), errors.Is(err, ErrInvalidWindow):
		s.logger.Warn("%s: %v", op, err)
	default:
		s.logger.Error("%s: transaction failed: %v", op, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %s - transaction: %w", ErrInternal, op, err)
		}
	}
	return err
}

// validateWindow проверяет формат полей и start_time < end_time
func validateWindow(w *domain.AvailabilityWindow) error {
	if w.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidWindow)
	}
	if _, err := types.ParseDate(w.Date.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidWindow, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidWindow, err)
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	return nil
}
