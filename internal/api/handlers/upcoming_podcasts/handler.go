package upcoming_podcasts

import (
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
)

const msgInvalidPagination = "некорректные параметры пагинации"

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

// Handle GET /api/v1/podcasts/upcoming
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

	result, err := h.service.GetUpcoming(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("GET /podcasts/upcoming - Failed to fetch podcasts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
