package models

import (
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// Request модели

// ListSlotsRequest запрос на получение списка слотов
type ListSlotsRequest struct {
	PodcastID *int64  `json:"podcastId,omitempty"`
	Date      *string `json:"date,omitempty"` // "2006-01-02"
	Status    *string `json:"status,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

// UpdateSlotRequest запрос на обновление слота
type UpdateSlotRequest struct {
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// BulkDeleteRequest запрос на пакетное удаление слотов
type BulkDeleteRequest struct {
	SlotIDs []int64 `json:"slotIds"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          int64     `json:"id"`
	PodcastID   int64     `json:"podcastId"`
	Date        string    `json:"date"` // "2006-01-02"
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"bookedCount"`
	IsFull      bool      `json:"isFull"`
	Status      string    `json:"status"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов и пагинацией
type SlotListResponse struct {
	Slots      []SlotResponse `json:"slots"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// BulkDeleteResponse ответ пакетного удаления
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// FromDomainSlot конвертирует доменную модель в response
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		PodcastID:   s.PodcastID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		BookedCount: s.BookedCount,
		IsFull:      s.IsFull(),
		Status:      string(s.Status),
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов с пагинацией
func FromDomainSlotList(slots []*domain.Slot, total, page, limit int) *SlotListResponse {
	resp := &SlotListResponse{
		Slots:      make([]SlotResponse, 0, len(slots)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}

	return resp
}

// TotalPages считает число страниц: ceil(total/limit)
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ToDomainSlotStatus конвертирует строку в доменный статус слота
func ToDomainSlotStatus(s string) (domain.SlotStatus, bool) {
	for _, status := range domain.AllSlotStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
