package create_booking

import (
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	createBooking "github.com/chapternet/CN-PodcastService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID int64   `json:"slotId"`
	UserID int64   `json:"userId"`
	Notes  *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
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

	SlotDate      string `json:"slotDate"`
	SlotStartTime string `json:"slotStartTime"`
	SlotEndTime   string `json:"slotEndTime"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SlotID: r.SlotID,
		UserID: r.UserID,
		Notes:  r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		SlotID:        resp.SlotID,
		PodcastID:     resp.PodcastID,
		UserID:        resp.UserID,
		Status:        resp.Status,
		MemberName:    resp.MemberName,
		MemberEmail:   resp.MemberEmail,
		MemberMobile:  resp.MemberMobile,
		MemberChapter: resp.MemberChapter,
		AdminNotes:    resp.AdminNotes,
		SlotDate:      resp.SlotDate.Format(domain.DateFormat),
		SlotStartTime: resp.SlotStartTime.String(),
		SlotEndTime:   resp.SlotEndTime.String(),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
