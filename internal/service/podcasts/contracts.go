package podcasts

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// PodcastRepository интерфейс репозитория подкастов
type PodcastRepository interface {
	Create(ctx context.Context, p *domain.Podcast) (*domain.Podcast, error)
	GetByID(ctx context.Context, id int64) (*domain.Podcast, error)
	List(ctx context.Context, filter domain.PodcastFilter) ([]*domain.Podcast, int, error)
	Update(ctx context.Context, id int64, upd domain.PodcastUpdate) error
	Delete(ctx context.Context, id int64) error
}

// ImageStore интерфейс хранилища изображений подкастеров
type ImageStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// ListCache интерфейс кэша публичных списков
type ListCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
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
