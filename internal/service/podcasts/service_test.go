package podcasts

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/cache"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
	"github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
)

type fakePodcastRepo struct {
	podcasts  map[int64]*domain.Podcast
	nextID    int64
	updates   []domain.PodcastUpdate
	createErr error
	listCalls int
}

func newFakePodcastRepo(podcasts ...*domain.Podcast) *fakePodcastRepo {
	repo := &fakePodcastRepo{podcasts: make(map[int64]*domain.Podcast), nextID: 100}
	for _, p := range podcasts {
		repo.podcasts[p.ID] = p
	}
	return repo
}

func (f *fakePodcastRepo) Create(_ context.Context, p *domain.Podcast) (*domain.Podcast, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *p
	created.ID = f.nextID
	f.podcasts[created.ID] = &created
	return &created, nil
}

func (f *fakePodcastRepo) GetByID(_ context.Context, id int64) (*domain.Podcast, error) {
	if p, ok := f.podcasts[id]; ok {
		return p, nil
	}
	return nil, podcastRepo.ErrPodcastNotFound
}

func (f *fakePodcastRepo) List(_ context.Context, _ domain.PodcastFilter) ([]*domain.Podcast, int, error) {
	f.listCalls++
	result := make([]*domain.Podcast, 0, len(f.podcasts))
	for _, p := range f.podcasts {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (f *fakePodcastRepo) Update(_ context.Context, id int64, upd domain.PodcastUpdate) error {
	p, ok := f.podcasts[id]
	if !ok {
		return podcastRepo.ErrPodcastNotFound
	}
	f.updates = append(f.updates, upd)
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.PodcasterName != nil {
		p.PodcasterName = *upd.PodcasterName
	}
	if upd.PodcasterImage != nil {
		p.PodcasterImage = *upd.PodcasterImage
	}
	return nil
}

func (f *fakePodcastRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.podcasts[id]; !ok {
		return podcastRepo.ErrPodcastNotFound
	}
	delete(f.podcasts, id)
	return nil
}

type fakeImageStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeImageStore) Save(_ multipart.File, header *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := "stored-" + header.Filename
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeImageStore) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

type fakeCache struct {
	values      map[string][]byte
	sets        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, _ interface{}) bool {
	_, ok := f.values[key]
	return ok
}

func (f *fakeCache) Set(_ context.Context, key string, _ interface{}) {
	f.sets++
	f.values[key] = []byte("cached")
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) {
	f.invalidated = append(f.invalidated, keys...)
	for _, key := range keys {
		delete(f.values, key)
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopFile struct{}

func (nopFile) Read([]byte) (int, error)          { return 0, nil }
func (nopFile) ReadAt([]byte, int64) (int, error) { return 0, nil }
func (nopFile) Seek(int64, int) (int64, error)    { return 0, nil }
func (nopFile) Close() error                      { return nil }

func samplePodcast() *domain.Podcast {
	return &domain.Podcast{
		ID:             1,
		PodcasterName:  "Jane Host",
		PodcasterImage: "host.jpg",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:         domain.PodcastOngoing,
		IsActive:       true,
	}
}

func newService(repo *fakePodcastRepo, images *fakeImageStore, listCache *fakeCache, now time.Time) *Service {
	svc := NewService(repo, images, listCache, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func saveRequest() *models.SavePodcastRequest {
	return &models.SavePodcastRequest{
		PodcasterName: "Jane Host",
		StartDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func TestService_ToggleActive(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("deactivation forces cancelled despite future end date", func(t *testing.T) {
		repo := newFakePodcastRepo(samplePodcast())
		listCache := newFakeCache()
		svc := newService(repo, &fakeImageStore{}, listCache, now)

		resp, err := svc.ToggleActive(context.Background(), 1, false)
		require.NoError(t, err)

		assert.False(t, resp.IsActive)
		assert.Equal(t, string(domain.PodcastCancelled), resp.Status)
		assert.Contains(t, listCache.invalidated, cache.KeyUpcomingPodcasts)
	})

	t.Run("reactivation forces upcoming", func(t *testing.T) {
		p := samplePodcast()
		p.IsActive = false
		p.Status = domain.PodcastCancelled
		repo := newFakePodcastRepo(p)
		svc := newService(repo, &fakeImageStore{}, newFakeCache(), now)

		resp, err := svc.ToggleActive(context.Background(), 1, true)
		require.NoError(t, err)

		assert.True(t, resp.IsActive)
		assert.Equal(t, string(domain.PodcastUpcoming), resp.Status)
	})

	t.Run("unknown podcast", func(t *testing.T) {
		svc := newService(newFakePodcastRepo(), &fakeImageStore{}, newFakeCache(), now)

		_, err := svc.ToggleActive(context.Background(), 42, false)
		assert.ErrorIs(t, err, ErrPodcastNotFound)
	})
}

func TestService_Create(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	header := &multipart.FileHeader{Filename: "host.jpg"}

	t.Run("image is required", func(t *testing.T) {
		svc := newService(newFakePodcastRepo(), &fakeImageStore{}, newFakeCache(), now)

		_, err := svc.Create(context.Background(), saveRequest(), nil, nil)
		assert.ErrorIs(t, err, ErrImageRequired)
	})

	t.Run("derives status from dates", func(t *testing.T) {
		repo := newFakePodcastRepo()
		listCache := newFakeCache()
		svc := newService(repo, &fakeImageStore{}, listCache, now)

		resp, err := svc.Create(context.Background(), saveRequest(), nopFile{}, header)
		require.NoError(t, err)

		assert.Equal(t, string(domain.PodcastUpcoming), resp.Status)
		assert.Equal(t, "stored-host.jpg", resp.PodcasterImage)
		assert.Contains(t, listCache.invalidated, cache.KeyUpcomingPodcasts)
	})

	t.Run("removes stored image when repository fails", func(t *testing.T) {
		repo := newFakePodcastRepo()
		repo.createErr = errors.New("insert failed")
		images := &fakeImageStore{}
		svc := newService(repo, images, newFakeCache(), now)

		_, err := svc.Create(context.Background(), saveRequest(), nopFile{}, header)
		require.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{"stored-host.jpg"}, images.removed)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService(newFakePodcastRepo(), &fakeImageStore{}, newFakeCache(), now)

		req := saveRequest()
		req.PodcasterName = ""
		_, err := svc.Create(context.Background(), req, nopFile{}, header)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = saveRequest()
		req.EndDate = req.StartDate.AddDate(0, 0, -1)
		_, err = svc.Create(context.Background(), req, nopFile{}, header)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = saveRequest()
		req.StartDate = time.Time{}
		_, err = svc.Create(context.Background(), req, nopFile{}, header)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = saveRequest()
		req.PodcasterName = strings.Repeat("a", domain.MaxPodcasterNameLength+1)
		_, err = svc.Create(context.Background(), req, nopFile{}, header)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = saveRequest()
		req.Venue = strings.Repeat("v", domain.MaxVenueLength+1)
		_, err = svc.Create(context.Background(), req, nopFile{}, header)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = saveRequest()
		req.AboutPodcaster = strings.Repeat("b", domain.MaxAboutPodcasterLength+1)
		_, err = svc.Create(context.Background(), req, nopFile{}, header)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	header := &multipart.FileHeader{Filename: "new.jpg"}

	t.Run("new image replaces the old file", func(t *testing.T) {
		repo := newFakePodcastRepo(samplePodcast())
		images := &fakeImageStore{}
		svc := newService(repo, images, newFakeCache(), now)

		req := saveRequest()
		resp, err := svc.Update(context.Background(), 1, req, nopFile{}, header)
		require.NoError(t, err)

		assert.Equal(t, "stored-new.jpg", resp.PodcasterImage)
		assert.Equal(t, []string{"host.jpg"}, images.removed)
	})

	t.Run("omitted image keeps the existing one", func(t *testing.T) {
		repo := newFakePodcastRepo(samplePodcast())
		images := &fakeImageStore{}
		svc := newService(repo, images, newFakeCache(), now)

		resp, err := svc.Update(context.Background(), 1, saveRequest(), nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "host.jpg", resp.PodcasterImage)
		assert.Empty(t, images.removed)
	})
}

func TestService_GetUpcoming(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("caches the default first page", func(t *testing.T) {
		repo := newFakePodcastRepo(samplePodcast())
		listCache := newFakeCache()
		svc := newService(repo, &fakeImageStore{}, listCache, now)

		_, err := svc.GetUpcoming(context.Background(), 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, listCache.sets)
		assert.Equal(t, 1, repo.listCalls)

		// повторное обращение идет из кэша
		_, err = svc.GetUpcoming(context.Background(), 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.listCalls)
	})

	t.Run("other pages are not cached", func(t *testing.T) {
		repo := newFakePodcastRepo(samplePodcast())
		listCache := newFakeCache()
		svc := newService(repo, &fakeImageStore{}, listCache, now)

		_, err := svc.GetUpcoming(context.Background(), 2, 0)
		require.NoError(t, err)
		assert.Zero(t, listCache.sets)
	})
}
