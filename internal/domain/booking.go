package domain

import (
	"time"

	"github.com/chapternet/CN-PodcastService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a member's claim on a slot
type Booking struct {
	ID        int64
	SlotID    int64
	PodcastID int64 // денормализовано для выборок по подкасту
	UserID    int64 // внешний ID участника (MemberService)
	Status    BookingStatus

	// Denormalized member data for history and server-side search
	MemberName    string
	MemberEmail   string
	MemberMobile  *string
	MemberChapter *string

	AdminNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized slot snapshot, filled from a join on read
	SlotDate        time.Time
	SlotStartTime   types.TimeString
	SlotEndTime     types.TimeString
	SlotCapacity    int
	SlotBookedCount int
	SlotStatus      SlotStatus
}

// HoldsSeat reports whether the booking counts toward the slot's
// booked count. Pending and accepted bookings hold a seat; rejected
// and cancelled ones release it.
func (b *Booking) HoldsSeat() bool {
	return b.Status == BookingPending || b.Status == BookingAccepted
}

// IsTerminal reports whether the booking is in a released state
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingRejected || b.Status == BookingCancelled
}

// CanBeCancelledBy reports whether the booking is still cancellable at
// the given moment: the slot must start more than noticeHours in the
// future and the booking must not already be cancelled or rejected.
// This is advisory only; it is not an authorization check.
func (b *Booking) CanBeCancelledBy(now time.Time, noticeHours int) bool {
	if b.IsTerminal() {
		return false
	}
	startsAt, err := b.SlotStartTime.At(b.SlotDate)
	if err != nil {
		return false
	}
	return startsAt.Sub(now) > time.Duration(noticeHours)*time.Hour
}

// BookingFilter фильтр для получения бронирований подкаста
type BookingFilter struct {
	PodcastID int64   // Обязательный параметр
	SlotID    *int64  // Фильтр по слоту (опционально)
	Search    *string // Поиск по имени и email участника (опционально)
	Page      int     // Номер страницы, 1-индексация
	Limit     int     // Размер страницы
}

// BookingStats счетчики бронирований участника
type BookingStats struct {
	Total     int
	Pending   int
	Accepted  int
	Rejected  int
	Cancelled int
	Completed int // accepted со слотом в прошлом
}
