package generate_slots

import (
	"fmt"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	generateSlots "github.com/chapternet/CN-PodcastService/internal/usecase/generate_slots"
	"github.com/chapternet/CN-PodcastService/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	Dates           []string `json:"dates"`     // ["2024-06-01", ...]
	StartTime       string   `json:"startTime"` // "09:00"
	EndTime         string   `json:"endTime"`   // "18:00"
	DurationMinutes int      `json:"durationMinutes"`
	Capacity        int      `json:"capacity"`
}

// SlotResponse HTTP model созданного слота
type SlotResponse struct {
	ID          int64  `json:"id"`
	PodcastID   int64  `json:"podcastId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Status      string `json:"status"`
}

// GenerateSlotsResponse HTTP response model.
// Errors содержит описания пропущенных дубликатов; пустой Slots при
// непустых Errors остается успешным ответом.
type GenerateSlotsResponse struct {
	Slots  []SlotResponse `json:"slots"`
	Errors []string       `json:"errors,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(podcastID int64) (*generateSlots.Request, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, raw := range r.Dates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", raw, err)
		}
		dates = append(dates, date)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse startTime: %w", err)
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse endTime: %w", err)
	}

	return &generateSlots.Request{
		PodcastID:       podcastID,
		Dates:           dates,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: r.DurationMinutes,
		Capacity:        r.Capacity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	out := &GenerateSlotsResponse{
		Slots:  make([]SlotResponse, 0, len(resp.Created)),
		Errors: resp.Skipped,
	}

	for _, s := range resp.Created {
		out.Slots = append(out.Slots, SlotResponse{
			ID:          s.ID,
			PodcastID:   s.PodcastID,
			Date:        s.Date.Format(domain.DateFormat),
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			Capacity:    s.Capacity,
			BookedCount: s.BookedCount,
			Status:      s.Status,
		})
	}

	return out
}
