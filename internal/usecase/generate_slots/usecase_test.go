package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
)

type fakePodcastRepo struct {
	podcast *domain.Podcast
	err     error
}

func (f *fakePodcastRepo) GetByID(_ context.Context, _ int64) (*domain.Podcast, error) {
	return f.podcast, f.err
}

type fakeSlotRepo struct {
	created   []*domain.Slot
	requested []*domain.Slot
	err       error
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	f.requested = slots
	if f.err != nil {
		return nil, f.err
	}
	if f.created != nil {
		return f.created, nil
	}
	return slots, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activePodcast() *domain.Podcast {
	return &domain.Podcast{
		ID:        1,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    domain.PodcastUpcoming,
		IsActive:  true,
	}
}

func newUseCase(pr *fakePodcastRepo, sr *fakeSlotRepo) *UseCase {
	uc := NewUseCase(pr, sr, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		PodcastID: 1,
		Dates: []time.Time{
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		StartTime:       "09:00",
		EndTime:         "12:00",
		DurationMinutes: 60,
		Capacity:        5,
	}
}

func TestExecuteExpandsWindowPerDate(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, slotRepo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 2 даты по 3 часовых слота в окне 09:00-12:00
	require.Len(t, resp.Created, 6)
	assert.Empty(t, resp.Skipped)

	first := resp.Created[0]
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "10:00", first.EndTime.String())
	assert.Equal(t, 5, first.Capacity)
	assert.Equal(t, 0, first.BookedCount)
	assert.Equal(t, string(domain.SlotAvailable), first.Status)

	last := resp.Created[5]
	assert.Equal(t, "11:00", last.StartTime.String())
	assert.Equal(t, "12:00", last.EndTime.String())
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), last.Date)
}

func TestExecuteDropsPartialTrailingSlot(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, slotRepo)

	req := validRequest()
	req.Dates = req.Dates[:1]
	req.EndTime = "11:30"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 09:00-10:00, 10:00-11:00; хвост 11:00-12:00 не влезает в окно
	require.Len(t, resp.Created, 2)
	assert.Equal(t, "11:00", resp.Created[1].EndTime.String())
}

func TestExecuteZeroCreatedIsSuccess(t *testing.T) {
	// БД вернула пустой список: все слоты уже существовали
	slotRepo := &fakeSlotRepo{created: []*domain.Slot{}}
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, slotRepo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, resp.Created)
	assert.Len(t, resp.Skipped, 6)
	assert.Contains(t, resp.Skipped[0], "already exists")
}

func TestExecutePartialDuplicates(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, slotRepo)

	req := validRequest()
	req.Dates = req.Dates[:1]

	// Репозиторий "создал" только первые два из трех запрошенных
	slotRepo.created = []*domain.Slot{
		{PodcastID: 1, Date: req.Dates[0], StartTime: "09:00", EndTime: "10:00"},
		{PodcastID: 1, Date: req.Dates[0], StartTime: "10:00", EndTime: "11:00"},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, resp.Created, 2)
	require.Len(t, resp.Skipped, 1)
	assert.Contains(t, resp.Skipped[0], "11:00")
}

func TestExecuteValidation(t *testing.T) {
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, &fakeSlotRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no dates", func(r *Request) { r.Dates = nil }},
		{"bad start time", func(r *Request) { r.StartTime = "9am" }},
		{"start after end", func(r *Request) { r.StartTime = "14:00"; r.EndTime = "12:00" }},
		{"zero duration", func(r *Request) { r.DurationMinutes = 0 }},
		{"duration above limit", func(r *Request) { r.DurationMinutes = 10000 }},
		{"zero capacity", func(r *Request) { r.Capacity = 0 }},
		{"capacity above limit", func(r *Request) { r.Capacity = domain.MaxSlotCapacity + 1 }},
		{"negative podcast id", func(r *Request) { r.PodcastID = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecutePodcastNotFound(t *testing.T) {
	uc := newUseCase(&fakePodcastRepo{err: podcastRepo.ErrPodcastNotFound}, &fakeSlotRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPodcastNotFound)
}

func TestExecuteInactivePodcast(t *testing.T) {
	p := activePodcast()
	p.IsActive = false

	uc := newUseCase(&fakePodcastRepo{podcast: p}, &fakeSlotRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPodcastInactive)
}

func TestExecuteDateOutsidePodcastRange(t *testing.T) {
	uc := newUseCase(&fakePodcastRepo{podcast: activePodcast()}, &fakeSlotRepo{})

	req := validRequest()
	req.Dates = append(req.Dates, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateOutOfRange)
}

func TestExpandSlotsUsesRequestedCapacity(t *testing.T) {
	req := validRequest()
	req.Capacity = 3

	slots, err := expandSlots(req)
	require.NoError(t, err)

	for _, s := range slots {
		assert.Equal(t, 3, s.Capacity)
		assert.True(t, s.IsActive)
	}
}
