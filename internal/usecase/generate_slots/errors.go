package generate_slots

import "errors"

var (
	// ErrPodcastNotFound возвращается, когда подкаст не найден
	ErrPodcastNotFound = errors.New("generate_slots: podcast not found")

	// ErrPodcastInactive возвращается для деактивированного или отмененного подкаста
	ErrPodcastInactive = errors.New("generate_slots: podcast is not active")

	// ErrDateOutOfRange возвращается, когда дата вне периода проведения подкаста
	ErrDateOutOfRange = errors.New("generate_slots: date is outside the podcast date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
