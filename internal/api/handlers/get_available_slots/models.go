package get_available_slots

import (
	"github.com/chapternet/CN-PodcastService/internal/domain"
	getAvailableSlots "github.com/chapternet/CN-PodcastService/internal/usecase/get_available_slots"
)

// AvailableSlotResponse HTTP model доступного слота
type AvailableSlotResponse struct {
	ID             int64  `json:"id"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	PodcastID int64                   `json:"podcastId"`
	Date      string                  `json:"date"`
	Slots     []AvailableSlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *GetAvailableSlotsResponse {
	out := &GetAvailableSlotsResponse{
		PodcastID: resp.PodcastID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     make([]AvailableSlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, AvailableSlotResponse{
			ID:             s.ID,
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
		})
	}

	return out
}
