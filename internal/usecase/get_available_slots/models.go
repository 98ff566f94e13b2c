package get_available_slots

import (
	"time"

	"github.com/chapternet/CN-PodcastService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	PodcastID int64     // ID подкаста
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов.
// Пустой список для прошедшей даты или дня без свободных слотов -
// информационный исход, а не ошибка.
type Response struct {
	PodcastID int64
	Date      time.Time
	Slots     []AvailableSlot
}

// AvailableSlot слот, доступный для бронирования
type AvailableSlot struct {
	ID             int64
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
	TotalSpots     int
}
