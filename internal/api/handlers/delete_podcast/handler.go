package delete_podcast

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	"github.com/chapternet/CN-PodcastService/internal/service/podcasts"
)

const (
	msgInvalidID       = "некорректный ID подкаста"
	msgPodcastNotFound = "подкаст не найден"
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

// Handle DELETE /api/v1/podcasts/{podcastId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "podcastId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, podcasts.ErrPodcastNotFound) {
			h.logger.Warn("DELETE /podcasts/%d - Podcast not found", id)
			handlers.RespondNotFound(w, msgPodcastNotFound)
			return
		}
		h.logger.Error("DELETE /podcasts/%d - Failed to delete podcast: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /podcasts/%d - Podcast deleted successfully", id)
	handlers.RespondNoContent(w)
}
