package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("catalog: category not found")

	// ErrCategoryExists возвращается, когда категория с таким именем уже есть
	ErrCategoryExists = errors.New("catalog: category already exists")

	// ErrServiceInUse возвращается при изменении или удалении услуги, на которую ссылаются бронирования
	ErrServiceInUse = errors.New("catalog: service is referenced by bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
