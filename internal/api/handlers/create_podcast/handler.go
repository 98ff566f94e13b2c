package create_podcast

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	"github.com/chapternet/CN-PodcastService/internal/service/podcasts"
)

const (
	msgInvalidForm   = "некорректные данные формы"
	msgImageRequired = "изображение подкастера обязательно"
	msgInvalidImage  = "изображение не принято: проверьте формат и размер"
	msgInvalidInput  = "некорректные данные подкаста"
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

// Handle POST /api/v1/podcasts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseSaveForm(r)
	if err != nil {
		h.logger.Warn("POST /podcasts - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	image, header, err := r.FormFile("image")
	if err != nil {
		h.logger.Warn("POST /podcasts - Image missing: %v", err)
		handlers.RespondBadRequest(w, msgImageRequired)
		return
	}
	defer image.Close()

	result, err := h.service.Create(r.Context(), req, image, header)
	if err != nil {
		switch {
		case errors.Is(err, podcasts.ErrImageRequired):
			handlers.RespondBadRequest(w, msgImageRequired)

		case errors.Is(err, podcasts.ErrInvalidImage):
			h.logger.Warn("POST /podcasts - Image rejected: %v", err)
			handlers.RespondBadRequest(w, msgInvalidImage)

		case errors.Is(err, podcasts.ErrInvalidInput):
			h.logger.Warn("POST /podcasts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /podcasts - Failed to create podcast: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /podcasts - Podcast created successfully: podcast_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
