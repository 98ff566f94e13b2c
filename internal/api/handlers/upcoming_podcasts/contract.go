package upcoming_podcasts

import (
	"context"

	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

type PodcastsService interface {
	GetUpcoming(ctx context.Context, page, limit int) (*podcastModels.PodcastListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
