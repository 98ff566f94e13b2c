package list_bookings

import (
	"context"

	"github.com/chapternet/CN-PodcastService/internal/service/bookings/models"
)

type BookingsService interface {
	ListByPodcast(ctx context.Context, req *models.ListPodcastBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
