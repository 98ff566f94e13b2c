package domain

import (
	"time"

	"github.com/chapternet/CN-PodcastService/pkg/types"
)

// SlotStatus represents the status of a bookable slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotClosed    SlotStatus = "closed"
)

// Slot represents a bookable time window under a podcast, with fixed capacity
type Slot struct {
	ID          int64
	PodcastID   int64
	Date        time.Time // date-only
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	BookedCount int // invariant: 0 <= BookedCount <= Capacity
	Status      SlotStatus
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull reports whether the slot has no remaining capacity
func (s *Slot) IsFull() bool {
	return s.BookedCount >= s.Capacity
}

// RemainingCapacity returns the number of free spots
func (s *Slot) RemainingCapacity() int {
	if s.BookedCount >= s.Capacity {
		return 0
	}
	return s.Capacity - s.BookedCount
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.BookedCount) / float64(s.Capacity) * 100
}

// IsBookable reports whether new bookings can be placed on the slot
func (s *Slot) IsBookable() bool {
	return s.IsActive && s.Status == SlotAvailable && !s.IsFull()
}

// StartsAt возвращает полный момент начала слота (дата + время начала)
func (s *Slot) StartsAt() (time.Time, error) {
	return s.StartTime.At(s.Date)
}

// SlotFilter фильтр для получения списка слотов
type SlotFilter struct {
	PodcastID *int64            // Фильтр по подкасту (опционально)
	Date      *time.Time        // Фильтр по дате (опционально)
	Status    *SlotStatus       // Фильтр по статусу (опционально)
	StartFrom *types.TimeString // Слоты, начинающиеся не раньше (опционально)
	Page      int               // Номер страницы, 1-индексация
	Limit     int               // Размер страницы
}
