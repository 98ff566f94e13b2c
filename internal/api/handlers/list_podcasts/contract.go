package list_podcasts

import (
	"context"

	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

type PodcastsService interface {
	List(ctx context.Context, req *podcastModels.ListPodcastsRequest) (*podcastModels.PodcastListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
