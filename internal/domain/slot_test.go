package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotIsFull(t *testing.T) {
	tests := []struct {
		name        string
		capacity    int
		bookedCount int
		wantFull    bool
	}{
		{name: "empty", capacity: 5, bookedCount: 0, wantFull: false},
		{name: "partial", capacity: 5, bookedCount: 3, wantFull: false},
		{name: "exactly full", capacity: 5, bookedCount: 5, wantFull: true},
		{name: "single seat taken", capacity: 1, bookedCount: 1, wantFull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Slot{Capacity: tt.capacity, BookedCount: tt.bookedCount}
			assert.Equal(t, tt.wantFull, s.IsFull())
			assert.Equal(t, tt.wantFull, s.RemainingCapacity() == 0)
		})
	}
}

func TestSlotOccupancyRate(t *testing.T) {
	s := &Slot{Capacity: 4, BookedCount: 1}
	assert.InDelta(t, 25.0, s.OccupancyRate(), 0.001)

	s = &Slot{Capacity: 0}
	assert.Zero(t, s.OccupancyRate())
}

func TestSlotIsBookable(t *testing.T) {
	s := &Slot{Capacity: 2, BookedCount: 1, Status: SlotAvailable, IsActive: true}
	assert.True(t, s.IsBookable())

	s.Status = SlotClosed
	assert.False(t, s.IsBookable())

	s.Status = SlotAvailable
	s.BookedCount = 2
	assert.False(t, s.IsBookable())

	s.BookedCount = 0
	s.IsActive = false
	assert.False(t, s.IsBookable())
}
