package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
)

type fakeRegistryAPI struct {
	pages       map[int]*client.SlotPage
	listCalls   int
	deleted     []int64
	bulkCalls   [][]int64
	bulkDeleted int64
}

func (f *fakeRegistryAPI) ListSlots(_ context.Context, q client.SlotListQuery) (*client.SlotPage, error) {
	f.listCalls++
	if page, ok := f.pages[q.Page]; ok {
		return page, nil
	}
	return &client.SlotPage{Page: q.Page, Limit: q.Limit}, nil
}

func (f *fakeRegistryAPI) DeleteSlot(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRegistryAPI) BulkDeleteSlots(_ context.Context, slotIDs []int64) (int64, error) {
	f.bulkCalls = append(f.bulkCalls, slotIDs)
	return f.bulkDeleted, nil
}

type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(string) bool { return true }

func slotPage(page int, ids ...int64) *client.SlotPage {
	slots := make([]client.Slot, 0, len(ids))
	for _, id := range ids {
		slots = append(slots, client.Slot{ID: id, Capacity: 5})
	}
	return &client.SlotPage{
		Slots:      slots,
		Total:      25,
		Page:       page,
		Limit:      12,
		TotalPages: 3,
	}
}

func newRegistry(api *fakeRegistryAPI, notify *recordingNotifier) *SlotRegistryView {
	return NewSlotRegistryView(api, notify, alwaysConfirm{}, nopLogger{}, 1)
}

func TestSlotRegistryView_Selection(t *testing.T) {
	api := &fakeRegistryAPI{pages: map[int]*client.SlotPage{
		1: slotPage(1, 10, 11, 12),
		2: slotPage(2, 20, 21),
	}}
	view := newRegistry(api, &recordingNotifier{})

	require.NoError(t, view.Load(context.Background(), 1))

	view.ToggleSelect(10)
	view.ToggleSelect(11)
	assert.True(t, view.IsSelected(10))
	assert.ElementsMatch(t, []int64{10, 11}, view.SelectedIDs())

	view.ToggleSelect(10)
	assert.False(t, view.IsSelected(10))

	// select all выбирает только отображаемые, повторный вызов снимает выбор
	view.SelectAll()
	assert.ElementsMatch(t, []int64{10, 11, 12}, view.SelectedIDs())
	view.SelectAll()
	assert.Empty(t, view.SelectedIDs())

	// смена страницы сбрасывает выбор
	view.ToggleSelect(11)
	require.NoError(t, view.Load(context.Background(), 2))
	assert.Empty(t, view.SelectedIDs())
	assert.Equal(t, 2, view.Page)
}

func TestSlotRegistryView_DeleteMany(t *testing.T) {
	t.Run("empty selection is rejected locally", func(t *testing.T) {
		api := &fakeRegistryAPI{pages: map[int]*client.SlotPage{1: slotPage(1, 10)}}
		notify := &recordingNotifier{}
		view := newRegistry(api, notify)
		require.NoError(t, view.Load(context.Background(), 1))

		err := view.DeleteMany(context.Background())

		assert.ErrorIs(t, err, ErrEmptySelection)
		assert.Empty(t, api.bulkCalls)
		assert.Equal(t, []string{msgSelectSlotsToDelete}, notify.failures)
	})

	t.Run("clears selection and refreshes on success", func(t *testing.T) {
		api := &fakeRegistryAPI{
			pages:       map[int]*client.SlotPage{1: slotPage(1, 10, 11, 12)},
			bulkDeleted: 2,
		}
		notify := &recordingNotifier{}
		view := newRegistry(api, notify)
		require.NoError(t, view.Load(context.Background(), 1))

		view.ToggleSelect(10)
		view.ToggleSelect(12)

		require.NoError(t, view.DeleteMany(context.Background()))

		require.Len(t, api.bulkCalls, 1)
		assert.ElementsMatch(t, []int64{10, 12}, api.bulkCalls[0])
		assert.Empty(t, view.SelectedIDs())
		assert.Equal(t, 2, api.listCalls) // первичная загрузка + refresh
		assert.Contains(t, notify.successes, "2 slots deleted")
	})
}

func TestSlotRegistryView_DeleteOne(t *testing.T) {
	api := &fakeRegistryAPI{pages: map[int]*client.SlotPage{1: slotPage(1, 10, 11, 12)}}
	view := newRegistry(api, &recordingNotifier{})
	require.NoError(t, view.Load(context.Background(), 1))

	view.ToggleSelect(11)

	require.NoError(t, view.DeleteOne(context.Background(), 11))

	assert.Equal(t, []int64{11}, api.deleted)
	assert.False(t, view.IsSelected(11))
	require.Len(t, view.Slots, 2)
	for _, s := range view.Slots {
		assert.NotEqual(t, int64(11), s.ID)
	}
}
