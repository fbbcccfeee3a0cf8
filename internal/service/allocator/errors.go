package allocator

import "errors"

var (
	// ErrInvalidServices возвращается, когда хотя бы одна из выбранных услуг не существует
	ErrInvalidServices = errors.New("allocator: one or more services do not exist")

	// ErrEmptyBooking возвращается, когда суммарная длительность услуг равна нулю
	ErrEmptyBooking = errors.New("allocator: booking has zero duration")

	// ErrPastBooking возвращается, когда начало бронирования в прошлом
	ErrPastBooking = errors.New("allocator: booking starts in the past")

	// ErrNoAvailableSlot возвращается, когда интервал не покрыт активным окном доступности
	ErrNoAvailableSlot = errors.New("allocator: no availability window covers the requested interval")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("allocator: requested interval overlaps an existing booking")

	// ErrBookingNotFound возвращается, когда переносимое бронирование удалено
	ErrBookingNotFound = errors.New("allocator: booking not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("allocator: internal error")
)
