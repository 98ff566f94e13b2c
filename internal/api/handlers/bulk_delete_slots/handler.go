package bulk_delete_slots

import (
	"errors"
	"net/http"

	"github.com/chapternet/CN-PodcastService/internal/api/handlers"
	slotsService "github.com/chapternet/CN-PodcastService/internal/service/slots"
	"github.com/chapternet/CN-PodcastService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptySelection     = "не выбраны слоты для удаления"
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

// Handle POST /api/v1/slots/bulk-delete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDeleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/bulk-delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.BulkDelete(r.Context(), &req)
	if err != nil {
		if errors.Is(err, slotsService.ErrEmptySelection) {
			h.logger.Warn("POST /slots/bulk-delete - Empty selection")
			handlers.RespondBadRequest(w, msgEmptySelection)
			return
		}
		h.logger.Error("POST /slots/bulk-delete - Failed to delete slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slots/bulk-delete - Deleted %d slots", response.Deleted)
	handlers.RespondJSON(w, http.StatusOK, response)
}
