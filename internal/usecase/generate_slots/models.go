package generate_slots

import (
	"time"

	"github.com/chapternet/CN-PodcastService/pkg/types"
)

// Request модель запроса на генерацию слотов
type Request struct {
	PodcastID       int64            // ID подкаста
	Dates           []time.Time      // Даты, на которые генерируются слоты
	StartTime       types.TimeString // Начало окна генерации (например, "09:00")
	EndTime         types.TimeString // Конец окна генерации (например, "18:00")
	DurationMinutes int              // Длительность одного слота в минутах
	Capacity        int              // Вместимость каждого слота
}

// GeneratedSlot созданный слот в ответе
type GeneratedSlot struct {
	ID          int64
	PodcastID   int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	BookedCount int
	Status      string
	CreatedAt   time.Time
}

// Response модель ответа генерации.
// Created может быть пустым при полном пересечении с уже существующими
// слотами: это информационный исход, а не ошибка.
type Response struct {
	Created []GeneratedSlot // Реально созданные слоты
	Skipped []string        // Человекочитаемые описания пропущенных дубликатов
}
