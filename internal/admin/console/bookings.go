package console

import (
	"context"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
	"github.com/chapternet/CN-PodcastService/internal/domain"
)

const (
	msgFailedToLoadBookings = "failed to load bookings"
	msgFailedToUpdateStatus = "failed to update booking status"

	// DefaultCancellationNotice минимальный запас до начала слота,
	// при котором отмена еще предлагается в интерфейсе
	DefaultCancellationNotice = 24 * time.Hour
)

// BookingStatusView список бронирований подкаста с поиском и сменой
// статусов. Поиск дебаунсится: серия быстрых нажатий дает один запрос.
type BookingStatusView struct {
	api       BookingAPI
	notify    Notifier
	clock     Clock
	log       Logger
	debouncer *Debouncer

	PodcastID int64
	Search    string

	Page       int
	Limit      int
	Bookings   []client.Booking
	Total      int
	TotalPages int

	// CancellationNotice настраиваемый порог подсказки об отмене
	CancellationNotice time.Duration

	loading bool
}

// NewBookingStatusView создает список бронирований подкаста
func NewBookingStatusView(api BookingAPI, notify Notifier, clock Clock, log Logger, podcastID int64) *BookingStatusView {
	return &BookingStatusView{
		api:                api,
		notify:             notify,
		clock:              clock,
		log:                log,
		debouncer:          NewDebouncer(SearchDebounceDelay),
		PodcastID:          podcastID,
		Page:               1,
		Limit:              domain.DefaultPageLimit,
		CancellationNotice: DefaultCancellationNotice,
	}
}

// Load загружает страницу бронирований с текущим поисковым запросом
func (v *BookingStatusView) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	result, err := v.api.ListBookings(ctx, v.PodcastID, page, v.Limit, v.Search)
	if err != nil {
		v.log.Error("BookingStatus: load failed for podcast=%d page=%d: %v", v.PodcastID, page, err)
		v.notify.Error(msgFailedToLoadBookings)
		return err
	}

	v.Page = result.Page
	v.Bookings = result.Bookings
	v.Total = result.Total
	v.TotalPages = result.TotalPages
	return nil
}

// SetSearch запоминает поисковый запрос и планирует загрузку первой
// страницы после паузы; быстрые нажатия схлопываются в один запрос
func (v *BookingStatusView) SetSearch(ctx context.Context, term string) {
	v.Search = term
	v.debouncer.Call(func() {
		_ = v.Load(ctx, 1)
	})
}

// Close отменяет отложенный поисковый запрос
func (v *BookingStatusView) Close() {
	v.debouncer.Stop()
}

// UpdateStatus применяет действие к бронированию и при успехе
// подменяет запись на месте; при ошибке список не трогается
func (v *BookingStatusView) UpdateStatus(ctx context.Context, bookingID int64, action string, adminNotes *string) error {
	if v.loading {
		return ErrBusy
	}
	v.loading = true
	defer func() { v.loading = false }()

	updated, err := v.api.UpdateBookingStatus(ctx, bookingID, &client.UpdateBookingStatusRequest{
		Action:     action,
		AdminNotes: adminNotes,
	})
	if err != nil {
		v.log.Error("BookingStatus: update failed for booking=%d action=%q: %v", bookingID, action, err)
		v.notify.Error(msgFailedToUpdateStatus)
		return err
	}

	for i := range v.Bookings {
		if v.Bookings[i].ID == bookingID {
			v.Bookings[i] = *updated
			break
		}
	}

	v.notify.Success("booking " + updated.Status)
	return nil
}

// CanCancel подсказка интерфейса: отмена предлагается, когда до начала
// слота остается больше порога, а статус не cancelled и не rejected.
// Это не проверка прав — сервер сам решает судьбу запроса.
func (v *BookingStatusView) CanCancel(b client.Booking) bool {
	if b.Status == string(domain.BookingCancelled) || b.Status == string(domain.BookingRejected) {
		return false
	}

	startsAt, err := time.Parse(domain.DateFormat+" 15:04", b.Slot.Date+" "+b.Slot.StartTime)
	if err != nil {
		return false
	}

	return startsAt.After(v.clock.Now().Add(v.CancellationNotice))
}
