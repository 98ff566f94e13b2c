package update_podcast

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	"github.com/chapternet/CN-PodcastService/internal/service/podcasts"
)

const (
	msgInvalidID       = "некорректный ID подкаста"
	msgInvalidForm     = "некорректные данные формы"
	msgPodcastNotFound = "подкаст не найден"
	msgInvalidImage    = "изображение не принято: проверьте формат и размер"
	msgInvalidInput    = "некорректные данные подкаста"
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

// Handle PUT /api/v1/podcasts/{podcastId}
// Полная форма обновляет подкаст; форма из одного isActive переключает
// активность с принудительной сменой статуса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "podcastId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.logger.Warn("PUT /podcasts/%d - Invalid form: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	if isToggleForm(r) {
		isActive, err := parseToggle(r)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidForm)
			return
		}

		result, err := h.service.ToggleActive(r.Context(), id, isActive)
		if err != nil {
			h.respondServiceError(w, id, err)
			return
		}

		h.logger.Info("PUT /podcasts/%d - Activation toggled: is_active=%t", id, isActive)
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	req, err := parseSaveForm(r)
	if err != nil {
		h.logger.Warn("PUT /podcasts/%d - Invalid form: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	// Изображение опционально: без файла остается прежнее
	var image multipart.File
	var header *multipart.FileHeader
	if f, fh, ferr := r.FormFile("image"); ferr == nil {
		image = f
		header = fh
		defer f.Close()
	}

	result, err := h.service.Update(r.Context(), id, req, image, header)
	if err != nil {
		h.respondServiceError(w, id, err)
		return
	}

	h.logger.Info("PUT /podcasts/%d - Podcast updated successfully", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, id int64, err error) {
	switch {
	case errors.Is(err, podcasts.ErrPodcastNotFound):
		h.logger.Warn("PUT /podcasts/%d - Podcast not found", id)
		handlers.RespondNotFound(w, msgPodcastNotFound)

	case errors.Is(err, podcasts.ErrInvalidImage):
		h.logger.Warn("PUT /podcasts/%d - Image rejected: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidImage)

	case errors.Is(err, podcasts.ErrInvalidInput):
		h.logger.Warn("PUT /podcasts/%d - Invalid input: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("PUT /podcasts/%d - Failed to update podcast: %v", id, err)
		handlers.RespondInternalError(w)
	}
}
