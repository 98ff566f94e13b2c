package list_bookings

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	bookingsService "github.com/chapternet/CN-PodcastService/internal/service/bookings"
	"github.com/chapternet/CN-PodcastService/internal/service/bookings/models"
)

const (
	msgInvalidPodcastID = "некорректный ID подкаста"
	msgInvalidSlotID    = "некорректный ID слота"
	msgInvalidFilter    = "некорректные параметры фильтра"
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

// Handle GET /api/v1/podcasts/{podcastId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	podcastID, err := handlers.PathInt64(r, "podcastId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPodcastID)
		return
	}

	slotID, err := handlers.QueryInt64Ptr(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	page, err := handlers.QueryInt(r, "page", 1)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	req := &models.ListPodcastBookingsRequest{
		PodcastID: podcastID,
		SlotID:    slotID,
		Search:    handlers.QueryString(r, "search"),
		Page:      page,
		Limit:     limit,
	}

	response, err := h.service.ListByPodcast(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			h.logger.Warn("GET /podcasts/%d/bookings - Invalid filter: %v", podcastID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /podcasts/%d/bookings - Failed to list bookings: %v", podcastID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
