package console

import (
	"context"
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
	"github.com/chapternet/CN-PodcastService/internal/domain"
)

const (
	msgSelectSlotsToDelete = "please select slots to delete"
	msgFailedToLoadSlots   = "failed to load slots"
	msgFailedToDeleteSlot  = "failed to delete slot"
	msgFailedToDeleteSlots = "failed to delete slots"
)

// SlotRegistryView постраничный реестр слотов подкаста с выбором
// и удалением. Набор выбранных идентификаторов живет в рамках текущей
// страницы: смена страницы сбрасывает выбор.
type SlotRegistryView struct {
	api     SlotRegistryAPI
	notify  Notifier
	confirm Confirmer
	log     Logger

	PodcastID    int64
	DateFilter   string
	StatusFilter string

	Page       int
	Limit      int
	Slots      []client.Slot
	Total      int
	TotalPages int

	selection map[int64]struct{}
	loading   bool
}

// NewSlotRegistryView создает реестр слотов подкаста
func NewSlotRegistryView(api SlotRegistryAPI, notify Notifier, confirm Confirmer, log Logger, podcastID int64) *SlotRegistryView {
	return &SlotRegistryView{
		api:       api,
		notify:    notify,
		confirm:   confirm,
		log:       log,
		PodcastID: podcastID,
		Page:      1,
		Limit:     domain.DefaultSlotsPageLimit,
		selection: make(map[int64]struct{}),
	}
}

// Load загружает страницу слотов; смена страницы сбрасывает выбор
func (v *SlotRegistryView) Load(ctx context.Context, page int) error {
	if v.loading {
		return ErrBusy
	}
	v.loading = true
	defer func() { v.loading = false }()

	if page < 1 {
		page = 1
	}

	result, err := v.api.ListSlots(ctx, client.SlotListQuery{
		PodcastID: v.PodcastID,
		Date:      v.DateFilter,
		Status:    v.StatusFilter,
		Page:      page,
		Limit:     v.Limit,
	})
	if err != nil {
		v.log.Error("SlotRegistry: load failed for podcast=%d page=%d: %v", v.PodcastID, page, err)
		v.notify.Error(msgFailedToLoadSlots)
		return err
	}

	if page != v.Page {
		v.ClearSelection()
	}

	v.Page = result.Page
	v.Slots = result.Slots
	v.Total = result.Total
	v.TotalPages = result.TotalPages
	return nil
}

// ToggleSelect переключает выбор слота
func (v *SlotRegistryView) ToggleSelect(id int64) {
	if _, ok := v.selection[id]; ok {
		delete(v.selection, id)
		return
	}
	v.selection[id] = struct{}{}
}

// IsSelected сообщает, выбран ли слот
func (v *SlotRegistryView) IsSelected(id int64) bool {
	_, ok := v.selection[id]
	return ok
}

// SelectAll переключает выбор для всех слотов текущей страницы:
// если выбраны все — снимает выбор, иначе выбирает все отображаемые
func (v *SlotRegistryView) SelectAll() {
	allSelected := len(v.Slots) > 0
	for _, s := range v.Slots {
		if !v.IsSelected(s.ID) {
			allSelected = false
			break
		}
	}

	for _, s := range v.Slots {
		if allSelected {
			delete(v.selection, s.ID)
		} else {
			v.selection[s.ID] = struct{}{}
		}
	}
}

// SelectedIDs возвращает выбранные идентификаторы
func (v *SlotRegistryView) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(v.selection))
	for id := range v.selection {
		ids = append(ids, id)
	}
	return ids
}

// ClearSelection сбрасывает выбор
func (v *SlotRegistryView) ClearSelection() {
	v.selection = make(map[int64]struct{})
}

// DeleteOne удаляет один слот после подтверждения. Состояние страницы
// и выбора меняется только после подтвержденного успеха.
func (v *SlotRegistryView) DeleteOne(ctx context.Context, id int64) error {
	if v.loading {
		return ErrBusy
	}
	if !v.confirm.Confirm("delete this slot?") {
		return nil
	}

	v.loading = true
	defer func() { v.loading = false }()

	if err := v.api.DeleteSlot(ctx, id); err != nil {
		v.log.Error("SlotRegistry: delete failed for slot=%d: %v", id, err)
		v.notify.Error(msgFailedToDeleteSlot)
		return err
	}

	delete(v.selection, id)
	for i, s := range v.Slots {
		if s.ID == id {
			v.Slots = append(v.Slots[:i], v.Slots[i+1:]...)
			break
		}
	}
	v.Total--

	v.notify.Success("slot deleted")
	return nil
}

// DeleteMany удаляет выбранные слоты одним запросом. Пустой выбор
// отклоняется локально без обращения к серверу.
func (v *SlotRegistryView) DeleteMany(ctx context.Context) error {
	if v.loading {
		return ErrBusy
	}
	if len(v.selection) == 0 {
		v.notify.Error(msgSelectSlotsToDelete)
		return ErrEmptySelection
	}
	if !v.confirm.Confirm(fmt.Sprintf("delete %d selected slots?", len(v.selection))) {
		return nil
	}

	v.loading = true

	deleted, err := v.api.BulkDeleteSlots(ctx, v.SelectedIDs())
	if err != nil {
		v.loading = false
		v.log.Error("SlotRegistry: bulk delete failed for podcast=%d: %v", v.PodcastID, err)
		v.notify.Error(msgFailedToDeleteSlots)
		return err
	}

	v.ClearSelection()
	v.notify.Success(fmt.Sprintf("%d slots deleted", deleted))

	v.loading = false
	return v.Load(ctx, v.Page)
}
