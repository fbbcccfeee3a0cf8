package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований для администратора
// Даты берутся в часовом поясе настроек, обе границы включительно
type ListBookingsRequest struct {
	UserID *int64
	From   *types.Date
	To     *types.Date
}

// BusyIntervalsRequest период, за который показываются занятые интервалы
type BusyIntervalsRequest struct {
	From *types.Date
	To   *types.Date
}

// Response модели

// ServiceResponse услуга в составе бронирования
type ServiceResponse struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Worktime types.Worktime `json:"worktime"`
	Price    string         `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Services  []ServiceResponse `json:"services"`
	DateTime  time.Time         `json:"date_time"` // RFC3339 в зоне настроек
	EndTime   time.Time         `json:"end_time"`
	Notes     *string           `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// IntervalResponse занятый интервал без сведений о владельце
type IntervalResponse struct {
	DateTime time.Time `json:"date_time"`
	EndTime  time.Time `json:"end_time"`
}

// IntervalListResponse занятые интервалы календаря
type IntervalListResponse struct {
	Intervals []IntervalResponse `json:"intervals"`
}

// ExportFile сформированная выгрузка
type ExportFile struct {
	FileName string
	Data     []byte
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, переводя время в loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	services := make([]ServiceResponse, len(b.Services))
	for i, s := range b.Services {
		services[i] = ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Worktime: s.Worktime,
			Price:    s.Price.StringFixed(2),
		}
	}

	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Services:  services,
		DateTime:  b.DateTime.In(loc),
		EndTime:   b.EndTime.In(loc),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt.In(loc),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// FromDomainIntervals оставляет от бронирований только интервалы
func FromDomainIntervals(bookings []*domain.Booking, loc *time.Location) *IntervalListResponse {
	resp := &IntervalListResponse{
		Intervals: make([]IntervalResponse, len(bookings)),
	}
	for i, b := range bookings {
		resp.Intervals[i] = IntervalResponse{
			DateTime: b.DateTime.In(loc),
			EndTime:  b.EndTime.In(loc),
		}
	}
	return resp
}
