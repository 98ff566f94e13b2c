package update_slot

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	slotsService "github.com/chapternet/CN-PodcastService/internal/service/slots"
	"github.com/chapternet/CN-PodcastService/internal/service/slots/models"
)

const (
	msgInvalidID           = "некорректный ID слота"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSlotNotFound        = "слот не найден"
	msgCapacityBelowBooked = "вместимость не может быть меньше числа бронирований"
	msgInvalidInput        = "некорректные параметры обновления"
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

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/%d - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.Update(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/%d - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrCapacityBelowBooked):
			h.logger.Warn("PUT /slots/%d - Capacity below booked count", slotID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityBelowBooked)

		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("PUT /slots/%d - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /slots/%d - Failed to update slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/%d - Slot updated", slotID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
