package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

// Service сервис каталога услуг и категорий
type Service struct {
	repo      CatalogRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис каталога
func NewService(repo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListServices возвращает услуги, опционально только одной категории
func (s *Service) ListServices(ctx context.Context, categoryID *int64) (*models.ServiceListResponse, error) {
	services, err := s.repo.ListServices(ctx, categoryID)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: found %d services", len(services))
	return models.FromDomainServices(services), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainService(service), nil
}

// CreateService создает услугу (только администратор)
func (s *Service) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service := req.ToDomainService()
	service.Name = strings.TrimSpace(service.Name)
	s.logger.Info("CreateService: name=%q, worktime=%s", service.Name, service.Worktime)

	if err := validateService(service); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateService(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCategoryNotFound) {
			s.logger.Warn("CreateService: category id=%v not found", service.CategoryID)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService полностью заменяет услугу (только администратор)
// Услуга, на которую ссылаются бронирования, неизменяема: её длительность определяет их интервалы
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service := req.ToDomainService()
	service.ID = id
	service.Name = strings.TrimSpace(service.Name)
	s.logger.Info("UpdateService: updating service id=%d", id)

	if err := validateService(service); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		referenced, err := s.repo.IsServiceReferenced(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: UpdateService - check references: %w", ErrInternal, err)
		}
		if referenced {
			return ErrServiceInUse
		}

		if err := s.repo.UpdateService(txCtx, service); err != nil {
			switch {
			case errors.Is(err, catalogRepo.ErrServiceNotFound):
				return ErrServiceNotFound
			case errors.Is(err, catalogRepo.ErrCategoryNotFound):
				return ErrCategoryNotFound
			default:
				return fmt.Errorf("%w: UpdateService - repository error: %w", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateService: failed for service id=%d: %v", id, err)
		} else {
			s.logger.Warn("UpdateService: rejected for service id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// DeleteService удаляет услугу (только администратор)
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	s.logger.Info("DeleteService: deleting service id=%d", id)

	if err := s.repo.DeleteService(ctx, id); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrServiceNotFound):
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return ErrServiceNotFound
		case errors.Is(err, catalogRepo.ErrServiceInUse):
			s.logger.Warn("DeleteService: service id=%d is referenced by bookings", id)
			return ErrServiceInUse
		default:
			s.logger.Error("DeleteService: repository error for service id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteService: successfully deleted service id=%d", id)
	return nil
}

// ListCategories возвращает категории по имени
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCategories(categories), nil
}

// CreateCategory создает категорию (только администратор)
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	s.logger.Info("CreateCategory: name=%q", name)

	if err := validateCategoryName(name); err != nil {
		s.logger.Warn("CreateCategory: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateCategory(ctx, &domain.Category{Name: name})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCategoryExists) {
			s.logger.Warn("CreateCategory: category %q already exists", name)
			return nil, ErrCategoryExists
		}
		s.logger.Error("CreateCategory: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCategory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCategory: successfully created category id=%d", created.ID)
	return models.FromDomainCategory(created), nil
}

// UpdateCategory переименовывает категорию (только администратор)
func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	s.logger.Info("UpdateCategory: category id=%d, name=%q", id, name)

	if err := validateCategoryName(name); err != nil {
		s.logger.Warn("UpdateCategory: validation failed: %v", err)
		return nil, err
	}

	category := &domain.Category{ID: id, Name: name}
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrCategoryNotFound):
			s.logger.Warn("UpdateCategory: category id=%d not found", id)
			return nil, ErrCategoryNotFound
		case errors.Is(err, catalogRepo.ErrCategoryExists):
			s.logger.Warn("UpdateCategory: category %q already exists", name)
			return nil, ErrCategoryExists
		default:
			s.logger.Error("UpdateCategory: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateCategory - repository error: %v", ErrInternal, err)
		}
	}

	return models.FromDomainCategory(category), nil
}

// DeleteCategory удаляет категорию, услуги остаются без категории (только администратор)
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCategory: deleting category id=%d", id)

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrCategoryNotFound) {
			s.logger.Warn("DeleteCategory: category id=%d not found", id)
			return ErrCategoryNotFound
		}
		s.logger.Error("DeleteCategory: repository error for category id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCategory - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateService(s *domain.Service) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(s.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if s.Worktime.Duration() < 0 {
		return fmt.Errorf("%w: worktime must not be negative", ErrInvalidInput)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if s.CategoryID != nil && *s.CategoryID <= 0 {
		return fmt.Errorf("%w: category_id must be positive", ErrInvalidInput)
	}
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, domain.MaxCategoryNameLength)
	}
	return nil
}
