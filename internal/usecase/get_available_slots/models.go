package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date       types.Date // день в часовом поясе настроек
	ServiceIDs []int64    // услуги будущего бронирования, определяют длительность
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     types.Date
	Timezone string
	Duration time.Duration
	Slots    []domain.AvailableSlot // в зоне настроек, по возрастанию начала
}
