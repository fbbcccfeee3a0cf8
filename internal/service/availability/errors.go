package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability: window not found")

	// ErrInvalidWindow возвращается, когда начало окна не раньше его конца или поля не заданы
	ErrInvalidWindow = errors.New("availability: invalid window")

	// ErrOverlappingWindow возвращается, когда окно пересекается с другим окном того же дня
	ErrOverlappingWindow = errors.New("availability: window overlaps an existing window")

	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
