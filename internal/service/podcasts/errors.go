package podcasts

import "errors"

var (
	// ErrPodcastNotFound возвращается, когда подкаст не найден
	ErrPodcastNotFound = errors.New("podcast not found")

	// ErrImageRequired возвращается, когда при создании не передано изображение
	ErrImageRequired = errors.New("podcaster image is required")

	// ErrInvalidImage возвращается при некорректном файле изображения
	ErrInvalidImage = errors.New("invalid podcaster image")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
