package update_podcast

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	podcastModels "github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

const maxFormMemory = 8 << 20

// isToggleForm сообщает, что форма содержит только isActive:
// такой запрос переключает активность без изменения остальных полей
func isToggleForm(r *http.Request) bool {
	return r.FormValue("isActive") != "" &&
		r.FormValue("podcasterName") == "" &&
		r.FormValue("startDate") == ""
}

func parseToggle(r *http.Request) (bool, error) {
	isActive, err := strconv.ParseBool(r.FormValue("isActive"))
	if err != nil {
		return false, fmt.Errorf("parse isActive: %w", err)
	}
	return isActive, nil
}

func parseSaveForm(r *http.Request) (*podcastModels.SavePodcastRequest, error) {
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
