package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	"github.com/chapternet/CN-PodcastService/internal/domain"
	getAvailableSlots "github.com/chapternet/CN-PodcastService/internal/usecase/get_available_slots"
)

const (
	msgInvalidID       = "некорректный ID подкаста"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPodcastNotFound = "подкаст не найден"
	msgPodcastInactive = "подкаст неактивен"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/podcasts/{podcastId}/slots/available?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	podcastID, err := handlers.PathInt64(r, "podcastId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /podcasts/%d/slots/available - Invalid date %q: %v", podcastID, rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		PodcastID: podcastID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPodcastNotFound):
			h.logger.Warn("GET /podcasts/%d/slots/available - Podcast not found", podcastID)
			handlers.RespondNotFound(w, msgPodcastNotFound)

		case errors.Is(err, getAvailableSlots.ErrPodcastInactive):
			h.logger.Warn("GET /podcasts/%d/slots/available - Podcast inactive", podcastID)
			handlers.RespondError(w, http.StatusConflict, msgPodcastInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /podcasts/%d/slots/available - Invalid input: %v", podcastID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /podcasts/%d/slots/available - Failed to get slots: %v", podcastID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /podcasts/%d/slots/available - Returned %d slots for %s",
		podcastID, len(response.Slots), response.Date)
	handlers.RespondJSON(w, http.StatusOK, response)
}
