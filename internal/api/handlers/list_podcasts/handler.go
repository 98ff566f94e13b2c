package list_podcasts

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	"github.com/chapternet/CN-PodcastService/internal/service/podcasts"
	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

const (
	msgInvalidPagination = "некорректные параметры пагинации"
	msgInvalidFilter     = "некорректные параметры фильтрации"
)

type Handler struct {
	service PodcastsService
	logger  Logger
}

func NewHandler(service PodcastsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/podcasts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
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

	req := &podcastModels.ListPodcastsRequest{
		Search:   handlers.QueryString(r, "search"),
		Status:   handlers.QueryString(r, "status"),
		DateFrom: handlers.QueryString(r, "dateFrom"),
		DateTo:   handlers.QueryString(r, "dateTo"),
		Page:     page,
		Limit:    limit,
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, podcasts.ErrInvalidInput) {
			h.logger.Warn("GET /podcasts - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /podcasts - Failed to fetch podcasts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
