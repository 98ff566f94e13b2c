package models

import (
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// Request модели

// ListPodcastBookingsRequest запрос на получение бронирований подкаста
type ListPodcastBookingsRequest struct {
	PodcastID int64   `json:"podcastId"`
	SlotID    *int64  `json:"slotId,omitempty"`
	Search    *string `json:"search,omitempty"` // по имени и email участника
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

// UpdateStatusRequest запрос на изменение статуса бронирования
type UpdateStatusRequest struct {
	BookingID  int64   `json:"bookingId"`
	Action     string  `json:"action"` // pending|accepted|rejected|cancelled
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования и снимком слота
type BookingResponse struct {
	ID        int64  `json:"id"`
	SlotID    int64  `json:"slotId"`
	PodcastID int64  `json:"podcastId"`
	UserID    int64  `json:"userId"`
	Status    string `json:"status"`

	MemberName    string  `json:"memberName"`
	MemberEmail   string  `json:"memberEmail"`
	MemberMobile  *string `json:"memberMobile,omitempty"`
	MemberChapter *string `json:"memberChapter,omitempty"`

	AdminNotes *string `json:"adminNotes,omitempty"`

	Slot BookingSlotSnapshot `json:"slot"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingSlotSnapshot снимок слота в ответе бронирования
type BookingSlotSnapshot struct {
	Date        string `json:"date"` // "2006-01-02"
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Status      string `json:"status"`
}

// BookingListResponse ответ со списком бронирований и пагинацией
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// BookingStatsResponse счетчики бронирований участника
type BookingStatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

// FromDomainBooking конвертирует доменную модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		SlotID:        b.SlotID,
		PodcastID:     b.PodcastID,
		UserID:        b.UserID,
		Status:        string(b.Status),
		MemberName:    b.MemberName,
		MemberEmail:   b.MemberEmail,
		MemberMobile:  b.MemberMobile,
		MemberChapter: b.MemberChapter,
		AdminNotes:    b.AdminNotes,
		Slot: BookingSlotSnapshot{
			Date:        b.SlotDate.Format(domain.DateFormat),
			StartTime:   b.SlotStartTime.String(),
			EndTime:     b.SlotEndTime.String(),
			Capacity:    b.SlotCapacity,
			BookedCount: b.SlotBookedCount,
			Status:      string(b.SlotStatus),
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований с пагинацией
func FromDomainBookingList(bookings []*domain.Booking, total, page, limit int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings:   make([]BookingResponse, 0, len(bookings)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// FromDomainStats конвертирует счетчики в response
func FromDomainStats(s *domain.BookingStats) *BookingStatsResponse {
	return &BookingStatsResponse{
		Total:     s.Total,
		Pending:   s.Pending,
		Accepted:  s.Accepted,
		Rejected:  s.Rejected,
		Cancelled: s.Cancelled,
		Completed: s.Completed,
	}
}

// TotalPages считает число страниц: ceil(total/limit)
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ToDomainBookingStatus конвертирует действие в доменный статус бронирования
func ToDomainBookingStatus(s string) (domain.BookingStatus, bool) {
	for _, status := range domain.AllBookingStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
