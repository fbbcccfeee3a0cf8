package domain

import (
	"errors"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrInvalidWindow окно доступности с началом не раньше конца
var ErrInvalidWindow = errors.New("availability window: start_time must be before end_time")

// AvailabilityWindow is an admin-declared open interval on a single date
// Время задаётся в часовом поясе из TimezoneSetting
type AvailabilityWindow struct {
	ID          int64
	Date        types.Date
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Validate checks the start_time < end_time invariant
func (w *AvailabilityWindow) Validate() error {
	if !w.StartTime.IsBefore(w.EndTime) {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether an active window fully covers [start, end] on the given date
// Границы окна включительны
func (w *AvailabilityWindow) Contains(date types.Date, start, end types.TimeString) bool {
	return w.IsAvailable &&
		w.Date == date &&
		!w.StartTime.IsAfter(start) &&
		!w.EndTime.IsBefore(end)
}

// Overlaps reports whether the window intersects [start, end) on the same date regardless of IsAvailable
func (w *AvailabilityWindow) Overlaps(date types.Date, start, end types.TimeString) bool {
	return w.Date == date &&
		w.StartTime.IsBefore(end) &&
		w.EndTime.IsAfter(start)
}

// AvailabilityFilter фильтр для списка окон
type AvailabilityFilter struct {
	From       *types.Date // включительно
	To         *types.Date // включительно
	OnlyActive bool
}
