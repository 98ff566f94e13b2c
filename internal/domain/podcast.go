package domain

import "time"

// PodcastStatus represents the lifecycle status of a podcast
type PodcastStatus string

const (
	PodcastUpcoming  PodcastStatus = "upcoming"
	PodcastOngoing   PodcastStatus = "ongoing"
	PodcastCompleted PodcastStatus = "completed"
	PodcastCancelled PodcastStatus = "cancelled"
)

// Podcast represents a scheduled podcast recording event. Despite the
// name it is a date-ranged activity with bookable slots, not audio content.
type Podcast struct {
	ID             int64
	PodcasterName  string
	PodcasterImage string // stored file name, empty if no image
	AboutPodcaster string
	Venue          string
	StartDate      time.Time // date-only
	EndDate        time.Time // date-only
	Status         PodcastStatus
	IsActive       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveStatus computes the date-derived status against now.
// A deactivated podcast is always cancelled; this mirrors the activation
// override applied by ToggleActive (deactivation forces cancelled,
// reactivation forces upcoming until the next derivation).
func (p *Podcast) DeriveStatus(now time.Time) PodcastStatus {
	if !p.IsActive {
		return PodcastCancelled
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if today.Before(dateOnly(p.StartDate)) {
		return PodcastUpcoming
	}
	if today.After(dateOnly(p.EndDate)) {
		return PodcastCompleted
	}
	return PodcastOngoing
}

// CanGenerateSlots reports whether slot generation is allowed for the podcast
func (p *Podcast) CanGenerateSlots() bool {
	return p.IsActive
}

// ContainsDate reports whether the calendar date falls inside the
// podcast's inclusive date range.
func (p *Podcast) ContainsDate(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(p.StartDate)) && !d.After(dateOnly(p.EndDate))
}

// PodcastFilter фильтр для получения списка подкастов
type PodcastFilter struct {
	Search   *string        // Поиск по имени подкастера и месту проведения
	Status   *PodcastStatus // Фильтр по статусу (опционально)
	DateFrom *time.Time     // Начало периода (по startDate)
	DateTo   *time.Time     // Конец периода (по endDate)
	Page     int            // Номер страницы, 1-индексация
	Limit    int            // Размер страницы
}

// PodcastUpdate частичное обновление подкаста: nil поля не изменяются
type PodcastUpdate struct {
	PodcasterName  *string
	PodcasterImage *string
	AboutPodcaster *string
	Venue          *string
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *PodcastStatus
	IsActive       *bool
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
