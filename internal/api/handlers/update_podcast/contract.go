package update_podcast

import (
	"context"
	"mime/multipart"

	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

type PodcastsService interface {
	Update(ctx context.Context, id int64, req *podcastModels.SavePodcastRequest, image multipart.File, header *multipart.FileHeader) (*podcastModels.PodcastResponse, error)
	ToggleActive(ctx context.Context, id int64, isActive bool) (*podcastModels.PodcastResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
