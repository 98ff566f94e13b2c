package bookings

import (
	"context"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/queue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByPodcast(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]*domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, adminNotes *string) error
	StatsByUser(ctx context.Context, userID int64) (*domain.BookingStats, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	IncrementBooked(ctx context.Context, id int64) error
	DecrementBooked(ctx context.Context, id int64) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event queue.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
