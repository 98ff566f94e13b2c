package domain

// Default values
const (
	DefaultPageLimit               = 10
	DefaultSlotsPageLimit          = 12
	DefaultSlotCapacity            = 5
	DefaultSlotDurationMinutes     = 60
	DefaultCancellationNoticeHours = 24
)

// Business validation constants
const (
	MaxPageLimit               = 100
	MinSlotDurationMinutes     = 1
	MaxSlotDurationMinutes     = 480 // 8 hours
	MinSlotCapacity            = 1
	MaxSlotCapacity            = 1000
	MaxGenerationDates         = 366
	MaxAdminNotesLength        = 500
	MaxAboutPodcasterLength    = 5000
	MaxPodcasterNameLength     = 255
	MaxVenueLength             = 255
	MaxImageSizeBytes          = 5 << 20 // 5MB
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SeatHoldingStatuses статусы бронирований, занимающих место в слоте
var SeatHoldingStatuses = []BookingStatus{
	BookingPending,
	BookingAccepted,
}

// ReleasedStatuses статусы бронирований, освобождающих место
var ReleasedStatuses = []BookingStatus{
	BookingRejected,
	BookingCancelled,
}

// AllBookingStatuses допустимые действия над статусом бронирования.
// Граф переходов намеренно не ограничивается: сервер принимает любое
// из четырех действий (наблюдаемое поведение исходной системы).
var AllBookingStatuses = []BookingStatus{
	BookingPending,
	BookingAccepted,
	BookingRejected,
	BookingCancelled,
}

// AllSlotStatuses допустимые статусы слота
var AllSlotStatuses = []SlotStatus{
	SlotAvailable,
	SlotBooked,
	SlotClosed,
}

// AllPodcastStatuses допустимые статусы подкаста
var AllPodcastStatuses = []PodcastStatus{
	PodcastUpcoming,
	PodcastOngoing,
	PodcastCompleted,
	PodcastCancelled,
}
