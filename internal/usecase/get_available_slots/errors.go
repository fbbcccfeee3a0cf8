package get_available_slots

import "errors"

var (
	// ErrInvalidServices возвращается, когда часть услуг не найдена
	ErrInvalidServices = errors.New("get_available_slots: unknown service ids")

	// ErrEmptyBooking возвращается, когда суммарная длительность услуг равна нулю
	ErrEmptyBooking = errors.New("get_available_slots: services have zero total duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
