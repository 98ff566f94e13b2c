package bulk_delete_slots

import (
	"context"

	"github.com/chapternet/CN-PodcastService/internal/service/slots/models"
)

type SlotsService interface {
	BulkDelete(ctx context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
