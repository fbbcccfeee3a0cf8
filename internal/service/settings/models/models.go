package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UpdateTimezoneRequest запрос на смену часового пояса
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone"`
}

// TimezoneResponse текущий часовой пояс
type TimezoneResponse struct {
	Timezone  string    `json:"timezone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromDomainSetting конвертирует domain модель в DTO
func FromDomainSetting(s *domain.TimezoneSetting) *TimezoneResponse {
	if s == nil {
		return nil
	}
	return &TimezoneResponse{
		Timezone:  s.Timezone,
		UpdatedAt: s.UpdatedAt,
	}
}
