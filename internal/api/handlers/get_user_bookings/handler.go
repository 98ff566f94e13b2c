package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	bookingsService "github.com/chapternet/CN-PodcastService/internal/service/bookings"
)

const (
	msgInvalidUserID     = "некорректный ID участника"
	msgInvalidPagination = "некорректные параметры пагинации"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	page, err := handlers.QueryInt(r, "page", 1)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	result, err := h.service.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			h.logger.Warn("GET /users/%d/bookings - Invalid input: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		h.logger.Error("GET /users/%d/bookings - Failed to get bookings: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/%d/bookings - Retrieved %d of %d bookings", userID, len(result.Bookings), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
