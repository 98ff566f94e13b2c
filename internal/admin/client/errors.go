package client

import "errors"

var (
	// ErrUnauthorized возвращается на 401 от сервера
	ErrUnauthorized = errors.New("admin client: unauthorized")

	// ErrNotFound возвращается на 404 от сервера
	ErrNotFound = errors.New("admin client: not found")

	// ErrConflict возвращается на 409 (слот заполнен, подкаст неактивен)
	ErrConflict = errors.New("admin client: conflict")

	// ErrInvalidRequest возвращается на 400 от сервера
	ErrInvalidRequest = errors.New("admin client: invalid request")

	// ErrRemote возвращается на 5xx и неожиданные статусы
	ErrRemote = errors.New("admin client: remote error")

	// ErrUnavailable возвращается при сетевых ошибках
	ErrUnavailable = errors.New("admin client: service unavailable")
)
