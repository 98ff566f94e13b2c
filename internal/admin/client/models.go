package client

// Подкасты

// Podcast запись подкаста в ответах API
type Podcast struct {
	ID             int64  `json:"id"`
	PodcasterName  string `json:"podcasterName"`
	PodcasterImage string `json:"podcasterImage"`
	AboutPodcaster string `json:"aboutPodcaster"`
	Venue          string `json:"venue"`
	StartDate      string `json:"startDate"` // "2006-01-02"
	EndDate        string `json:"endDate"`
	Status         string `json:"status"`
	IsActive       bool   `json:"isActive"`
}

// PodcastPage страница подкастов
type PodcastPage struct {
	Podcasts   []Podcast `json:"podcasts"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// SavePodcastForm поля multipart формы создания/обновления подкаста
type SavePodcastForm struct {
	PodcasterName  string
	AboutPodcaster string
	Venue          string
	StartDate      string // "2006-01-02"
	EndDate        string
	IsActive       bool
}

// Слоты

// Slot запись слота в ответах API
type Slot struct {
	ID          int64  `json:"id"`
	PodcastID   int64  `json:"podcastId"`
	Date        string `json:"date"` // "2006-01-02"
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	IsFull      bool   `json:"isFull"`
	Status      string `json:"status"`
	IsActive    bool   `json:"isActive"`
}

// SlotPage страница слотов
type SlotPage struct {
	Slots      []Slot `json:"slots"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

// SlotListQuery параметры выборки слотов
type SlotListQuery struct {
	PodcastID int64
	Date      string
	Status    string
	Page      int
	Limit     int
}

// GenerateSlotsRequest запрос на генерацию слотов
type GenerateSlotsRequest struct {
	Dates           []string `json:"dates"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Capacity        int      `json:"capacity"`
}

// GenerateSlotsResult результат генерации слотов
type GenerateSlotsResult struct {
	Slots  []Slot   `json:"slots"`
	Errors []string `json:"errors,omitempty"`
}

// Бронирования

// Booking запись бронирования со снимками слота и участника
type Booking struct {
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

	Slot BookingSlot `json:"slot"`
}

// BookingSlot снимок слота внутри бронирования
type BookingSlot struct {
	Date        string `json:"date"` // "2006-01-02"
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Status      string `json:"status"`
}

// BookingPage страница бронирований
type BookingPage struct {
	Bookings   []Booking `json:"bookings"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// UpdateBookingStatusRequest запрос на изменение статуса бронирования
type UpdateBookingStatusRequest struct {
	Action     string  `json:"action"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// BulkDeleteResult результат пакетного удаления слотов
type BulkDeleteResult struct {
	Deleted int64 `json:"deleted"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
