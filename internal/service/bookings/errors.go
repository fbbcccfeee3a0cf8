package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrNotOwnerOrAdmin возвращается, когда пользователь не владелец бронирования и не администратор
	ErrNotOwnerOrAdmin = errors.New("bookings: not the owner of the booking or an admin")

	// ErrCancellationWindowExpired возвращается, когда до начала бронирования осталось меньше 8 часов
	ErrCancellationWindowExpired = errors.New("bookings: cancellation window expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
