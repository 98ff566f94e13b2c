package booking_stats

import (
	"context"

	"github.com/chapternet/CN-PodcastService/internal/service/bookings/models"
)

type BookingsService interface {
	Stats(ctx context.Context, userID int64) (*models.BookingStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
