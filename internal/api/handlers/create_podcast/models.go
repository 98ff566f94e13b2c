package create_podcast

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

// maxFormMemory лимит памяти на разбор multipart формы; файлы больше
// уходят во временные файлы
const maxFormMemory = 8 << 20

// parseSaveForm разбирает multipart форму подкаста.
// isActive по умолчанию true, если поле не передано.
func parseSaveForm(r *http.Request) (*podcastModels.SavePodcastRequest, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	startDate, err := time.Parse(domain.DateFormat, r.FormValue("startDate"))
	if err != nil {
		return nil, fmt.Errorf("parse startDate: %w", err)
	}
	endDate, err := time.Parse(domain.DateFormat, r.FormValue("endDate"))
	if err != nil {
		return nil, fmt.Errorf("parse endDate: %w", err)
	}

	isActive := true
	if raw := r.FormValue("isActive"); raw != "" {
		isActive, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse isActive: %w", err)
		}
	}

	return &podcastModels.SavePodcastRequest{
		PodcasterName:  r.FormValue("podcasterName"),
		AboutPodcaster: r.FormValue("aboutPodcaster"),
		Venue:          r.FormValue("venue"),
		StartDate:      startDate,
		EndDate:        endDate,
		IsActive:       isActive,
	}, nil
}
