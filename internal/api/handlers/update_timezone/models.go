package update_timezone

import (
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
)

// UpdateTimezoneRequest HTTP request model
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone"` // имя IANA, например "Europe/Istanbul"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateTimezoneRequest) ToServiceRequest() *models.UpdateTimezoneRequest {
	return &models.UpdateTimezoneRequest{
		Timezone: strings.TrimSpace(r.Timezone),
	}
}
