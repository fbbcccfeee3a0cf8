package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
)

const (
	msgInvalidServices = "одна или несколько услуг не существуют"
	msgEmptyBooking    = "бронирование должно содержать услуги с ненулевой длительностью"
	msgPastBooking     = "нельзя забронировать время в прошлом"
	msgNoAvailableSlot = "выбранное время не входит в рабочие окна"
	msgSlotConflict    = "выбранное время уже занято"
)

// RespondAllocationError отвечает на отказ аллокатора
// Возвращает false, если err не является отказом аллокатора
func RespondAllocationError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, allocator.ErrInvalidServices):
		RespondRejection(w, http.StatusBadRequest, KindInvalidServices, msgInvalidServices, FieldServiceIDs)
	case errors.Is(err, allocator.ErrEmptyBooking):
		RespondRejection(w, http.StatusBadRequest, KindEmptyBooking, msgEmptyBooking, FieldServiceIDs)
	case errors.Is(err, allocator.ErrPastBooking):
		RespondRejection(w, http.StatusBadRequest, KindPastBooking, msgPastBooking, "date_time")
	case errors.Is(err, allocator.ErrNoAvailableSlot):
		RespondRejection(w, http.StatusBadRequest, KindNoAvailableSlot, msgNoAvailableSlot, "date_time")
	case errors.Is(err, allocator.ErrSlotConflict):
		RespondRejection(w, http.StatusConflict, KindSlotConflict, msgSlotConflict, "date_time")
	default:
		return false
	}
	return true
}
