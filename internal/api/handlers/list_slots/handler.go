package list_slots

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	slotsService "github.com/chapternet/CN-PodcastService/internal/service/slots"
	"github.com/chapternet/CN-PodcastService/internal/service/slots/models"
)

const (
	msgInvalidPodcastID = "некорректный ID подкаста"
	msgInvalidFilter    = "некорректные параметры фильтра"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	podcastID, err := handlers.QueryInt64Ptr(r, "podcastId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPodcastID)
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

	req := &models.ListSlotsRequest{
		PodcastID: podcastID,
		Date:      handlers.QueryString(r, "date"),
		Status:    handlers.QueryString(r, "status"),
		Page:      page,
		Limit:     limit,
	}

	response, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, slotsService.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
