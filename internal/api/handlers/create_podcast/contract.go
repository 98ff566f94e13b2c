package create_podcast

import (
	"context"
	"mime/multipart"

	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

type PodcastsService interface {
	Create(ctx context.Context, req *podcastModels.SavePodcastRequest, image multipart.File, header *multipart.FileHeader) (*podcastModels.PodcastResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
