package get_user_bookings

import (
	"context"

	"github.com/chapternet/CN-PodcastService/internal/service/bookings/models"
)

type BookingsService interface {
	ListByUser(ctx context.Context, userID int64, page, limit int) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
