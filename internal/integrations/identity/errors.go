package identity

import "errors"

var (
	// ErrUnauthorized возвращается, когда токен отсутствует, просрочен или отклонён провайдером
	ErrUnauthorized = errors.New("identity: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
