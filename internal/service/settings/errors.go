package settings

import "errors"

var (
	// ErrInvalidTimezone возвращается, когда имя часового пояса не найдено в базе IANA
	ErrInvalidTimezone = errors.New("settings: invalid timezone")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
