package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
	"github.com/chapternet/CN-PodcastService/pkg/types"
)

type fakePodcastRepo struct {
	podcast *domain.Podcast
}

func (f *fakePodcastRepo) GetByID(_ context.Context, _ int64) (*domain.Podcast, error) {
	if f.podcast == nil {
		return nil, podcastRepo.ErrPodcastNotFound
	}
	return f.podcast, nil
}

type fakeSlotRepo struct {
	slots     []*domain.Slot
	listCalls int
}

func (f *fakeSlotRepo) List(_ context.Context, _ domain.SlotFilter) ([]*domain.Slot, int, error) {
	f.listCalls++
	return f.slots, len(f.slots), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func activePodcast() *domain.Podcast {
	return &domain.Podcast{
		ID:        1,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    domain.PodcastOngoing,
		IsActive:  true,
	}
}

func slot(id int64, startTime string, booked int) *domain.Slot {
	end, _ := time.Parse(domain.TimeFormat, startTime)
	return &domain.Slot{
		ID:          id,
		PodcastID:   1,
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(startTime),
		EndTime:     types.TimeString(end.Add(time.Hour).Format(domain.TimeFormat)),
		Capacity:    5,
		BookedCount: booked,
		Status:      domain.SlotAvailable,
		IsActive:    true,
	}
}

func newUseCase(pr *fakePodcastRepo, sr *fakeSlotRepo, now time.Time) *UseCase {
	uc := NewUseCase(pr, sr, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_FiltersBookableSlots(t *testing.T) {
	full := slot(3, "12:00", 5)
	closed := slot(4, "13:00", 0)
	closed.Status = domain.SlotClosed

	sr := &fakeSlotRepo{slots: []*domain.Slot{
		slot(1, "10:00", 0),
		slot(2, "11:00", 3),
		full,
		closed,
	}}

	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, sr,
		time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		PodcastID: 1,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, int64(1), resp.Slots[0].ID)
	assert.Equal(t, 5, resp.Slots[0].AvailableSpots)
	assert.Equal(t, int64(2), resp.Slots[1].ID)
	assert.Equal(t, 2, resp.Slots[1].AvailableSpots)
}

func TestExecute_TodayHidesStartedSlots(t *testing.T) {
	sr := &fakeSlotRepo{slots: []*domain.Slot{
		slot(1, "09:00", 0),
		slot(2, "15:00", 0),
	}}

	// Сейчас 2024-06-10 12:30 - утренний слот уже начался
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, sr,
		time.Date(2024, 6, 10, 12, 30, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		PodcastID: 1,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(2), resp.Slots[0].ID)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	sr := &fakeSlotRepo{slots: []*domain.Slot{slot(1, "10:00", 0)}}

	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, sr,
		time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		PodcastID: 1,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, sr.listCalls)
}

func TestExecute_DateOutsidePodcastRange(t *testing.T) {
	sr := &fakeSlotRepo{}

	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, sr,
		time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		PodcastID: 1,
		Date:      time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, sr.listCalls)
}

func TestExecute_InactivePodcast(t *testing.T) {
	p := activePodcast()
	p.IsActive = false

	uc := newUseCase(&fakePodcastRepo{podcast: p}, &fakeSlotRepo{},
		time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		PodcastID: 1,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrPodcastInactive)
}

func TestExecute_PodcastNotFound(t *testing.T) {
	uc := newUseCase(&fakePodcastRepo{}, &fakeSlotRepo{},
		time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		PodcastID: 42,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrPodcastNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, &fakeSlotRepo{},
		time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{PodcastID: 0, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PodcastID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
