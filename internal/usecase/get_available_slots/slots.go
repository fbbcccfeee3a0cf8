package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// generateSlots перебирает начала слотов с шагом step внутри каждого активного окна дня
// Слот попадает в ответ, если:
// - [start, start+duration] целиком лежит в окне (границы окна включительны)
// - start не раньше now
// - нет пересечения с существующими бронированиями (полуоткрытые интервалы)
// Конец считается от абсолютного момента начала, как в аллокаторе: в дни перевода часов
// настенное время конца отличается от startTime+duration
func generateSlots(
	windows []domain.AvailabilityWindow,
	date types.Date,
	loc *time.Location,
	duration time.Duration,
	step time.Duration,
	now time.Time,
	bookings []*domain.Booking,
) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	for _, window := range windows {
		for startTime := window.StartTime; startTime.IsBefore(window.EndTime); {
			if slot, ok := fitSlot(&window, date, startTime, loc, duration); ok {
				if !slot.Start.Before(now) && !overlapsAny(slot.Start, slot.End, bookings) {
					slots = append(slots, slot)
				}
			}

			next, err := startTime.Add(step)
			if err != nil {
				break
			}
			startTime = next
		}
	}

	return slots
}

// fitSlot строит слот с началом startTime и проверяет, что он помещается в окно
// Несуществующее настенное время (весенний перевод часов) слотом не считается
func fitSlot(
	window *domain.AvailabilityWindow,
	date types.Date,
	startTime types.TimeString,
	loc *time.Location,
	duration time.Duration,
) (domain.AvailableSlot, bool) {
	start := startTime.OnDate(date, loc)
	end := start.Add(duration)

	startDate, startWall := clock.WallClock(start, loc)
	if startDate != date || startWall != startTime {
		return domain.AvailableSlot{}, false
	}
	if !clock.SameLocalDate(start, end, loc) {
		return domain.AvailableSlot{}, false
	}
	_, endWall := clock.WallClock(end, loc)
	if !window.Contains(date, startWall, endWall) {
		return domain.AvailableSlot{}, false
	}

	return domain.AvailableSlot{Start: start, End: end}, true
}

// overlapsAny проверяет пересечение [start, end) хотя бы с одним бронированием
// Бронирование, которое заканчивается ровно в start, пересечением не считается
func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// uniqueIDs убирает повторы, сохраняя порядок первого вхождения
func uniqueIDs(ids []int64) []int64 {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
