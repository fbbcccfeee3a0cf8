package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// ServiceRequest запрос на создание или полную замену услуги
type ServiceRequest struct {
	Name       string          `json:"name"`
	Worktime   types.Worktime  `json:"worktime"` // "HH:MM:SS"
	Price      decimal.Decimal `json:"price"`
	Info       *string         `json:"info,omitempty"`
	CategoryID *int64          `json:"category_id,omitempty"`
}

// CategoryRequest запрос на создание или переименование категории
type CategoryRequest struct {
	Name string `json:"name"`
}

// Response модели

// ServiceResponse услуга
type ServiceResponse struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Worktime   types.Worktime `json:"worktime"`
	Price      string         `json:"price"` // два знака после запятой
	Info       *string        `json:"info,omitempty"`
	CategoryID *int64         `json:"category_id,omitempty"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// CategoryResponse категория
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse список категорий
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:         s.ID,
		Name:       s.Name,
		Worktime:   s.Worktime,
		Price:      s.Price.StringFixed(2),
		Info:       s.Info,
		CategoryID: s.CategoryID,
	}
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(services []domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, len(services))
	for i := range services {
		result[i] = *FromDomainService(&services[i])
	}
	return &ServiceListResponse{Services: result}
}

// FromDomainCategory конвертирует domain модель в DTO
func FromDomainCategory(c *domain.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name}
}

// FromDomainCategories конвертирует список категорий
func FromDomainCategories(categories []domain.Category) *CategoryListResponse {
	result := make([]CategoryResponse, len(categories))
	for i := range categories {
		result[i] = *FromDomainCategory(&categories[i])
	}
	return &CategoryListResponse{Categories: result}
}

// ToDomainService конвертирует запрос в domain модель
func (r *ServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:       r.Name,
		Worktime:   r.Worktime,
		Price:      r.Price.Round(2),
		Info:       r.Info,
		CategoryID: r.CategoryID,
	}
}
