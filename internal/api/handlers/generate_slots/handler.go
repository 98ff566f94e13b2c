package generate_slots

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	generateSlots "github.com/chapternet/CN-PodcastService/internal/usecase/generate_slots"
)

const (
	msgInvalidID          = "некорректный ID подкаста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат или времени"
	msgPodcastNotFound    = "подкаст не найден"
	msgPodcastInactive    = "подкаст неактивен, генерация слотов недоступна"
	msgDateOutOfRange     = "даты выходят за период проведения подкаста"
	msgInvalidInput       = "некорректные параметры генерации"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/podcasts/{podcastId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	podcastID, err := handlers.PathInt64(r, "podcastId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /podcasts/%d/slots/generate - Invalid request body: %v", podcastID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(podcastID)
	if err != nil {
		h.logger.Warn("POST /podcasts/%d/slots/generate - Failed to parse request: %v", podcastID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrPodcastNotFound):
			h.logger.Warn("POST /podcasts/%d/slots/generate - Podcast not found", podcastID)
			handlers.RespondNotFound(w, msgPodcastNotFound)

		case errors.Is(err, generateSlots.ErrPodcastInactive):
			h.logger.Warn("POST /podcasts/%d/slots/generate - Podcast inactive", podcastID)
			handlers.RespondError(w, http.StatusConflict, msgPodcastInactive)

		case errors.Is(err, generateSlots.ErrDateOutOfRange):
			h.logger.Warn("POST /podcasts/%d/slots/generate - Date out of range: %v", podcastID, err)
			handlers.RespondBadRequest(w, msgDateOutOfRange)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /podcasts/%d/slots/generate - Invalid input: %v", podcastID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /podcasts/%d/slots/generate - Failed to generate slots: %v", podcastID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /podcasts/%d/slots/generate - Generated %d slots, skipped %d",
		podcastID, len(response.Slots), len(response.Errors))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
