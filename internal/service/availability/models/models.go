package models

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	Date        types.Date       `json:"date"`
	StartTime   types.TimeString `json:"start_time"`
	EndTime     types.TimeString `json:"end_time"`
	IsAvailable *bool            `json:"is_available,omitempty"` // по умолчанию true
}

// UpdateWindowRequest запрос на изменение окна
// Все поля опциональны - обновляются только переданные значения
type UpdateWindowRequest struct {
	Date        *types.Date       `json:"date,omitempty"`
	StartTime   *types.TimeString `json:"start_time,omitempty"`
	EndTime     *types.TimeString `json:"end_time,omitempty"`
	IsAvailable *bool             `json:"is_available,omitempty"`
}

// ListWindowsRequest фильтр списка окон
type ListWindowsRequest struct {
	From       *types.Date
	To         *types.Date
	OnlyActive bool
}

// Response модели

// WindowResponse окно доступности
type WindowResponse struct {
	ID          int64            `json:"id"`
	Date        types.Date       `json:"date"`
	StartTime   types.TimeString `json:"start_time"`
	EndTime     types.TimeString `json:"end_time"`
	IsAvailable bool             `json:"is_available"`
}

// WindowListResponse список окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:          w.ID,
		Date:        w.Date,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}

// FromDomainWindows конвертирует список окон
func FromDomainWindows(windows []domain.AvailabilityWindow) *WindowListResponse {
	result := make([]WindowResponse, len(windows))
	for i := range windows {
		result[i] = *FromDomainWindow(&windows[i])
	}
	return &WindowListResponse{Windows: result}
}

// ToDomainWindow конвертирует запрос в domain модель
func (r *CreateWindowRequest) ToDomainWindow() *domain.AvailabilityWindow {
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}
	return &domain.AvailabilityWindow{
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: isAvailable,
	}
}

// Apply накладывает переданные поля на окно
func (r *UpdateWindowRequest) Apply(w *domain.AvailabilityWindow) {
	if r.Date != nil {
		w.Date = *r.Date
	}
	if r.StartTime != nil {
		w.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		w.EndTime = *r.EndTime
	}
	if r.IsAvailable != nil {
		w.IsAvailable = *r.IsAvailable
	}
}
