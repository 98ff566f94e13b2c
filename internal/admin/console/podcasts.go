package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
	"github.com/chapternet/CN-PodcastService/internal/domain"
)

const (
	msgFailedToLoadPodcasts  = "failed to load podcasts"
	msgFailedToSavePodcast   = "failed to save podcast"
	msgFailedToDeletePodcast = "failed to delete podcast"
	msgFailedToTogglePodcast = "failed to update podcast status"
)

// PodcastsView экран подкастов: список, сохранение, переключение
// активности и удаление
type PodcastsView struct {
	api     PodcastAPI
	notify  Notifier
	confirm Confirmer
	log     Logger

	Search string

	Page       int
	Limit      int
	Podcasts   []client.Podcast
	Total      int
	TotalPages int

	loading bool
}

// NewPodcastsView создает экран подкастов
func NewPodcastsView(api PodcastAPI, notify Notifier, confirm Confirmer, log Logger) *PodcastsView {
	return &PodcastsView{
		api:     api,
		notify:  notify,
		confirm: confirm,
		log:     log,
		Page:    1,
		Limit:   domain.DefaultPageLimit,
	}
}

// Load загружает страницу подкастов
func (v *PodcastsView) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	result, err := v.api.ListPodcasts(ctx, page, v.Limit, v.Search)
	if err != nil {
		v.log.Error("Podcasts: load failed for page=%d: %v", page, err)
		v.notify.Error(msgFailedToLoadPodcasts)
		return err
	}

	v.Page = result.Page
	v.Podcasts = result.Podcasts
	v.Total = result.Total
	v.TotalPages = result.TotalPages
	return nil
}

// Save создает (id == 0) или обновляет подкаст. Изображение обязательно
// только при создании: при обновлении без него сервер сохраняет прежнее.
func (v *PodcastsView) Save(ctx context.Context, id int64, form *client.SavePodcastForm, image io.Reader, imageName string) (*client.Podcast, error) {
	if v.loading {
		return nil, ErrBusy
	}

	if err := validatePodcastForm(form, id == 0, image != nil); err != nil {
		v.log.Warn("Podcasts: validation failed: %v", err)
		v.notify.Error(err.Error())
		return nil, err
	}

	v.loading = true
	defer func() { v.loading = false }()

	saved, err := v.api.SavePodcast(ctx, id, form, image, imageName)
	if err != nil {
		v.log.Error("Podcasts: save failed for id=%d: %v", id, err)
		v.notify.Error(msgFailedToSavePodcast)
		return nil, err
	}

	v.notify.Success("podcast saved")
	return saved, nil
}

// ToggleActive переключает активность подкаста. Деактивация принудительно
// выставляет статус cancelled, реактивация — upcoming, поверх статуса,
// выведенного из дат. Локальная запись меняется только после успеха.
func (v *PodcastsView) ToggleActive(ctx context.Context, podcastID int64) error {
	if v.loading {
		return ErrBusy
	}

	idx := -1
	for i := range v.Podcasts {
		if v.Podcasts[i].ID == podcastID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("console: podcast %d is not on the current page", podcastID)
	}

	v.loading = true
	defer func() { v.loading = false }()

	target := !v.Podcasts[idx].IsActive

	updated, err := v.api.TogglePodcastActive(ctx, podcastID, target)
	if err != nil {
		v.log.Error("Podcasts: toggle failed for id=%d: %v", podcastID, err)
		v.notify.Error(msgFailedToTogglePodcast)
		return err
	}

	v.Podcasts[idx] = *updated
	v.notify.Success("podcast " + updated.Status)
	return nil
}

// Delete удаляет подкаст после подтверждения; каскадное удаление слотов
// и бронирований выполняет сервер
func (v *PodcastsView) Delete(ctx context.Context, podcastID int64) error {
	if v.loading {
		return ErrBusy
	}
	if !v.confirm.Confirm("delete this podcast and all its slots?") {
		return nil
	}

	v.loading = true

	if err := v.api.DeletePodcast(ctx, podcastID); err != nil {
		v.loading = false
		v.log.Error("Podcasts: delete failed for id=%d: %v", podcastID, err)
		v.notify.Error(msgFailedToDeletePodcast)
		return err
	}

	v.notify.Success("podcast deleted")

	v.loading = false
	return v.Load(ctx, v.Page)
}

func validatePodcastForm(form *client.SavePodcastForm, isCreate, hasImage bool) error {
	if form.PodcasterName == "" {
		return &FieldError{Field: "podcasterName", Reason: "is required"}
	}
	if form.StartDate == "" {
		return &FieldError{Field: "startDate", Reason: "is required"}
	}
	if form.EndDate == "" {
		return &FieldError{Field: "endDate", Reason: "is required"}
	}

	start, err := time.Parse(domain.DateFormat, form.StartDate)
	if err != nil {
		return &FieldError{Field: "startDate", Reason: "must be a valid date"}
	}
	end, err := time.Parse(domain.DateFormat, form.EndDate)
	if err != nil {
		return &FieldError{Field: "endDate", Reason: "must be a valid date"}
	}
	if !start.Before(end) {
		return &FieldError{Field: "startDate", Reason: "must be before endDate"}
	}

	if isCreate && !hasImage {
		return &FieldError{Field: "image", Reason: "is required"}
	}
	return nil
}
