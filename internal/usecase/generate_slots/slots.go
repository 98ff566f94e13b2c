package generate_slots

import (
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// expandSlots разворачивает запрос в список слотов: для каждой даты
// нарезает окно [StartTime, EndTime] на отрезки по DurationMinutes.
// Последний неполный отрезок (endTime окна пересечен) отбрасывается.
func expandSlots(req *Request) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0, len(req.Dates))

	for _, date := range req.Dates {
		start := req.StartTime

		for {
			end, err := start.AddMinutes(req.DurationMinutes)
			if err != nil {
				// Вышли за 23:59, дальше по этой дате слотов нет
				break
			}
			if end.IsAfter(req.EndTime) {
				break
			}

			slots = append(slots, &domain.Slot{
				PodcastID:   req.PodcastID,
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				Capacity:    req.Capacity,
				BookedCount: 0,
				Status:      domain.SlotAvailable,
				IsActive:    true,
			})

			start = end
		}
	}

	return slots, nil
}

// skippedDescriptions вычисляет пропущенные слоты как разницу между
// запрошенными и реально созданными
func skippedDescriptions(requested, created []*domain.Slot) []string {
	key := func(s *domain.Slot) string {
		return fmt.Sprintf("%s %s", s.Date.Format(domain.DateFormat), s.StartTime)
	}

	createdKeys := make(map[string]struct{}, len(created))
	for _, s := range created {
		createdKeys[key(s)] = struct{}{}
	}

	skipped := make([]string, 0)
	for _, s := range requested {
		if _, ok := createdKeys[key(s)]; !ok {
			skipped = append(skipped, fmt.Sprintf("slot %s %s-%s already exists",
				s.Date.Format(domain.DateFormat), s.StartTime, s.EndTime))
		}
	}

	return skipped
}
