package podcast

import "errors"

var (
	// ErrPodcastNotFound возвращается, когда подкаст не найден
	ErrPodcastNotFound = errors.New("podcast.repository: podcast not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("podcast.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("podcast.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("podcast.repository: failed to scan row")
)
