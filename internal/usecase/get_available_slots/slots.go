package get_available_slots

import (
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// filterBookable оставляет слоты, в которые еще можно записаться:
// активные, со свободными местами и, если дата сегодняшняя, начинающиеся
// позже текущего времени
func filterBookable(slots []*domain.Slot, requestDate, now time.Time) []AvailableSlot {
	today := isSameDay(requestDate, now)
	nowTime := now.Format(domain.TimeFormat)

	result := make([]AvailableSlot, 0, len(slots))
	for _, s := range slots {
		if !s.IsBookable() {
			continue
		}
		if today && s.StartTime.String() <= nowTime {
			continue
		}

		result = append(result, AvailableSlot{
			ID:             s.ID,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			AvailableSpots: s.RemainingCapacity(),
			TotalSpots:     s.Capacity,
		})
	}

	return result
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
