package console

import (
	"context"
	"io"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
)

// SlotGeneratorAPI вызовы API, нужные генератору слотов
type SlotGeneratorAPI interface {
	GenerateSlots(ctx context.Context, podcastID int64, req *client.GenerateSlotsRequest) (*client.GenerateSlotsResult, error)
}

// SlotRegistryAPI вызовы API, нужные реестру слотов
type SlotRegistryAPI interface {
	ListSlots(ctx context.Context, q client.SlotListQuery) (*client.SlotPage, error)
	DeleteSlot(ctx context.Context, id int64) error
	BulkDeleteSlots(ctx context.Context, slotIDs []int64) (int64, error)
}

// BookingAPI вызовы API, нужные управлению бронированиями
type BookingAPI interface {
	ListBookings(ctx context.Context, podcastID int64, page, limit int, search string) (*client.BookingPage, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, req *client.UpdateBookingStatusRequest) (*client.Booking, error)
}

// PodcastAPI вызовы API, нужные экрану подкастов
type PodcastAPI interface {
	ListPodcasts(ctx context.Context, page, limit int, search string) (*client.PodcastPage, error)
	SavePodcast(ctx context.Context, id int64, form *client.SavePodcastForm, image io.Reader, imageName string) (*client.Podcast, error)
	TogglePodcastActive(ctx context.Context, id int64, isActive bool) (*client.Podcast, error)
	DeletePodcast(ctx context.Context, id int64) error
}

// Notifier показывает уведомления пользователю
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer запрашивает подтверждение действия
type Confirmer interface {
	Confirm(message string) bool
}

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock реальные часы для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}
