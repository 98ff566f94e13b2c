package create_booking

import (
	"fmt"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxAdminNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	return nil
}

// validateSlot проверяет, что слот можно забронировать в данный момент
func validateSlot(slot *domain.Slot, now time.Time) error {
	if !slot.IsBookable() {
		return ErrSlotNotAvailable
	}

	startsAt, err := slot.StartsAt()
	if err != nil {
		return fmt.Errorf("%w: invalid slot start time: %v", ErrInternal, err)
	}

	if !startsAt.After(now) {
		return ErrSlotInPast
	}

	return nil
}
