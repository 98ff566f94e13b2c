package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	"github.com/chapternet/CN-PodcastService/internal/api/middleware"
	bookingsService "github.com/chapternet/CN-PodcastService/internal/service/bookings"
)

const (
	msgInvalidID       = "некорректный ID бронирования"
	msgMissingUser     = "отсутствует ID пользователя"
	msgBookingNotFound = "бронирование не найдено"
	msgForbidden       = "доступ запрещен"
	msgCannotCancel    = "бронирование не может быть отменено"
	msgInvalidInput    = "некорректные данные запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Участник отменяет собственное бронирование; ID берется из токена.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/%d/cancel - Missing user ID in context", bookingID)
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingUser)
		return
	}

	response, err := h.service.Cancel(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrForbidden):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking belongs to another user, user=%d", bookingID, userID)
			handlers.RespondError(w, http.StatusForbidden, msgForbidden)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking is no longer cancellable", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed to cancel booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Booking cancelled by user=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
