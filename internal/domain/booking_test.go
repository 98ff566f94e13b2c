package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingCanBeCancelledBy(t *testing.T) {
	booking := &Booking{
		Status:        BookingPending,
		SlotDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SlotStartTime: "09:00",
	}

	// за двое суток до начала слота - отмена доступна
	now := time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)
	assert.True(t, booking.CanBeCancelledBy(now, DefaultCancellationNoticeHours))

	// менее чем за 24 часа - отмена недоступна
	now = time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC)
	assert.False(t, booking.CanBeCancelledBy(now, DefaultCancellationNoticeHours))

	// терминальные статусы не отменяются даже заранее
	early := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, status := range ReleasedStatuses {
		booking.Status = status
		assert.False(t, booking.CanBeCancelledBy(early, DefaultCancellationNoticeHours), "status=%s", status)
	}

	// accepted остается отменяемым
	booking.Status = BookingAccepted
	assert.True(t, booking.CanBeCancelledBy(early, DefaultCancellationNoticeHours))
}

func TestBookingHoldsSeat(t *testing.T) {
	for _, status := range SeatHoldingStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.HoldsSeat(), "status=%s", status)
		assert.False(t, b.IsTerminal(), "status=%s", status)
	}
	for _, status := range ReleasedStatuses {
		b := &Booking{Status: status}
		assert.False(t, b.HoldsSeat(), "status=%s", status)
		assert.True(t, b.IsTerminal(), "status=%s", status)
	}
}

func TestPodcastDeriveStatus(t *testing.T) {
	p := &Podcast{
		StartDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}

	assert.Equal(t, PodcastUpcoming, p.DeriveStatus(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, PodcastOngoing, p.DeriveStatus(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, PodcastOngoing, p.DeriveStatus(time.Date(2024, 6, 20, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, PodcastCompleted, p.DeriveStatus(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)))

	// деактивация перекрывает производный статус, даже если endDate в будущем
	p.IsActive = false
	assert.Equal(t, PodcastCancelled, p.DeriveStatus(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPodcastContainsDate(t *testing.T) {
	p := &Podcast{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.ContainsDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.ContainsDate(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.ContainsDate(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.ContainsDate(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)))
}
