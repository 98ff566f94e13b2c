package get_available_slots

import "errors"

var (
	// ErrPodcastNotFound возвращается, когда подкаст не найден
	ErrPodcastNotFound = errors.New("get_available_slots: podcast not found")

	// ErrPodcastInactive возвращается для деактивированного или отмененного подкаста
	ErrPodcastInactive = errors.New("get_available_slots: podcast is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
