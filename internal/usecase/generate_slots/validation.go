package generate_slots

import (
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PodcastID <= 0 {
		return fmt.Errorf("%w: podcastID must be positive", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: dates are required", ErrInvalidInput)
	}

	if len(req.Dates) > domain.MaxGenerationDates {
		return fmt.Errorf("%w: at most %d dates per request", ErrInvalidInput, domain.MaxGenerationDates)
	}

	for _, d := range req.Dates {
		if d.IsZero() {
			return fmt.Errorf("%w: dates must not be zero", ErrInvalidInput)
		}
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.Capacity < domain.MinSlotCapacity || req.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	return nil
}

// validatePodcast проверяет, что подкаст активен и все даты попадают
// в его период проведения
func validatePodcast(p *domain.Podcast, req *Request) error {
	if !p.CanGenerateSlots() {
		return ErrPodcastInactive
	}

	for _, d := range req.Dates {
		if !p.ContainsDate(d) {
			return fmt.Errorf("%w: %s", ErrDateOutOfRange, d.Format(domain.DateFormat))
		}
	}

	return nil
}
