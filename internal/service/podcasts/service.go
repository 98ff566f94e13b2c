package podcasts

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/cache"
	"github.com/chapternet/CN-PodcastService/internal/infra/files"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
	"github.com/chapternet/CN-PodcastService/internal/service/podcasts/models"
	"github.com/chapternet/CN-PodcastService/pkg/ptr"
)

// Service сервис для работы с подкастами
type Service struct {
	podcastRepo  PodcastRepository
	images       ImageStore
	cache        ListCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса подкастов
func NewService(
	podcastRepo PodcastRepository,
	images ImageStore,
	listCache ListCache,
	logger Logger,
) *Service {
	return &Service{
		podcastRepo:  podcastRepo,
		images:       images,
		cache:        listCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает подкаст. Изображение подкастера обязательно.
func (s *Service) Create(ctx context.Context, req *models.SavePodcastRequest, image multipart.File, header *multipart.FileHeader) (*models.PodcastResponse, error) {
	s.logger.Info("CreatePodcast: name=%q, venue=%q", req.PodcasterName, req.Venue)

	if err := validateSaveRequest(req); err != nil {
		s.logger.Warn("CreatePodcast: validation failed: %v", err)
		return nil, err
	}

	if image == nil || header == nil {
		s.logger.Warn("CreatePodcast: image missing")
		return nil, ErrImageRequired
	}

	imageName, err := s.images.Save(image, header)
	if err != nil {
		if errors.Is(err, files.ErrFileTooLarge) || errors.Is(err, files.ErrUnsupportedFormat) {
			s.logger.Warn("CreatePodcast: image rejected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		s.logger.Error("CreatePodcast: failed to save image: %v", err)
		return nil, fmt.Errorf("%w: Create - save image: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	p := &domain.Podcast{
		PodcasterName:  req.PodcasterName,
		PodcasterImage: imageName,
		AboutPodcaster: req.AboutPodcaster,
		Venue:          req.Venue,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       req.IsActive,
	}
	p.Status = p.DeriveStatus(now)

	created, err := s.podcastRepo.Create(ctx, p)
	if err != nil {
		// Откатываем сохраненный файл, чтобы не копить сирот
		_ = s.images.Remove(imageName)
		s.logger.Error("CreatePodcast: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx, cache.KeyUpcomingPodcasts)

	s.logger.Info("CreatePodcast: successfully created podcast id=%d", created.ID)
	return models.FromDomainPodcast(created), nil
}

// Update обновляет подкаст. Изображение опционально: nil оставляет прежнее.
func (s *Service) Update(ctx context.Context, id int64, req *models.SavePodcastRequest, image multipart.File, header *multipart.FileHeader) (*models.PodcastResponse, error) {
	s.logger.Info("UpdatePodcast: id=%d", id)

	if err := validateSaveRequest(req); err != nil {
		s.logger.Warn("UpdatePodcast: validation failed: %v", err)
		return nil, err
	}

	existing, err := s.getPodcast(ctx, id, "UpdatePodcast")
	if err != nil {
		return nil, err
	}

	upd := domain.PodcastUpdate{
		PodcasterName:  ptr.Ptr(req.PodcasterName),
		AboutPodcaster: ptr.Ptr(req.AboutPodcaster),
		Venue:          ptr.Ptr(req.Venue),
		StartDate:      ptr.Ptr(req.StartDate),
		EndDate:        ptr.Ptr(req.EndDate),
		IsActive:       ptr.Ptr(req.IsActive),
	}

	var newImage string
	if image != nil && header != nil {
		newImage, err = s.images.Save(image, header)
		if err != nil {
			if errors.Is(err, files.ErrFileTooLarge) || errors.Is(err, files.ErrUnsupportedFormat) {
				s.logger.Warn("UpdatePodcast: image rejected: %v", err)
				return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
			}
			s.logger.Error("UpdatePodcast: failed to save image: %v", err)
			return nil, fmt.Errorf("%w: Update - save image: %v", ErrInternal, err)
		}
		upd.PodcasterImage = ptr.Ptr(newImage)
	}

	// Статус пересчитывается от новых дат и активности
	derived := (&domain.Podcast{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	}).DeriveStatus(s.timeProvider.Now())
	upd.Status = &derived

	if err := s.podcastRepo.Update(ctx, id, upd); err != nil {
		if newImage != "" {
			_ = s.images.Remove(newImage)
		}
		if errors.Is(err, podcastRepo.ErrPodcastNotFound) {
			return nil, ErrPodcastNotFound
		}
		s.logger.Error("UpdatePodcast: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Старый файл больше не нужен
	if newImage != "" && existing.PodcasterImage != "" {
		_ = s.images.Remove(existing.PodcasterImage)
	}

	s.cache.Invalidate(ctx, cache.KeyUpcomingPodcasts)

	return s.GetByID(ctx, id)
}

// ToggleActive переключает активность подкаста.
// Деактивация принудительно переводит статус в cancelled, повторная
// активация возвращает upcoming независимо от дат. Дальше статус снова
// выводится из дат при следующем изменении.
func (s *Service) ToggleActive(ctx context.Context, id int64, isActive bool) (*models.PodcastResponse, error) {
	s.logger.Info("TogglePodcast: id=%d, isActive=%t", id, isActive)

	status := domain.PodcastCancelled
	if isActive {
		status = domain.PodcastUpcoming
	}

	upd := domain.PodcastUpdate{
		IsActive: ptr.Ptr(isActive),
		Status:   &status,
	}

	if err := s.podcastRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, podcastRepo.ErrPodcastNotFound) {
			s.logger.Warn("TogglePodcast: podcast id=%d not found", id)
			return nil, ErrPodcastNotFound
		}
		s.logger.Error("TogglePodcast: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ToggleActive - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx, cache.KeyUpcomingPodcasts)

	return s.GetByID(ctx, id)
}

// Delete удаляет подкаст вместе со слотами и бронированиями (каскад в БД)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeletePodcast: id=%d", id)

	existing, err := s.getPodcast(ctx, id, "DeletePodcast")
	if err != nil {
		return err
	}

	if err := s.podcastRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, podcastRepo.ErrPodcastNotFound) {
			return ErrPodcastNotFound
		}
		s.logger.Error("DeletePodcast: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if existing.PodcasterImage != "" {
		_ = s.images.Remove(existing.PodcasterImage)
	}

	s.cache.Invalidate(ctx, cache.KeyUpcomingPodcasts)

	s.logger.Info("DeletePodcast: successfully deleted podcast id=%d", id)
	return nil
}

// GetByID получает подкаст по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PodcastResponse, error) {
	p, err := s.getPodcast(ctx, id, "GetPodcast")
	if err != nil {
		return nil, err
	}
	return models.FromDomainPodcast(p), nil
}

// List получает страницу подкастов по фильтру
func (s *Service) List(ctx context.Context, req *models.ListPodcastsRequest) (*models.PodcastListResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListPodcasts: invalid filter: %v", err)
		return nil, err
	}

	podcasts, total, err := s.podcastRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListPodcasts: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPodcasts: fetched %d of %d podcasts (page=%d)", len(podcasts), total, filter.Page)
	return models.FromDomainPodcastList(podcasts, total, filter.Page, filter.Limit), nil
}

// GetUpcoming получает публичную витрину предстоящих подкастов.
// Первая страница кэшируется в Redis с коротким TTL.
func (s *Service) GetUpcoming(ctx context.Context, page, limit int) (*models.PodcastListResponse, error) {
	page, limit = normalizePaging(page, limit)

	cacheable := page == 1 && limit == domain.DefaultPageLimit
	if cacheable {
		var cached models.PodcastListResponse
		if s.cache.Get(ctx, cache.KeyUpcomingPodcasts, &cached) {
			return &cached, nil
		}
	}

	status := domain.PodcastUpcoming
	filter := domain.PodcastFilter{
		Status: &status,
		Page:   page,
		Limit:  limit,
	}

	podcasts, total, err := s.podcastRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainPodcastList(podcasts, total, page, limit)

	if cacheable {
		s.cache.Set(ctx, cache.KeyUpcomingPodcasts, resp)
	}

	return resp, nil
}

func (s *Service) getPodcast(ctx context.Context, id int64, op string) (*domain.Podcast, error) {
	p, err := s.podcastRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, podcastRepo.ErrPodcastNotFound) {
			s.logger.Warn("%s: podcast id=%d not found", op, id)
			return nil, ErrPodcastNotFound
		}
		s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return p, nil
}

func validateSaveRequest(req *models.SavePodcastRequest) error {
	if req.PodcasterName == "" {
		return fmt.Errorf("%w: podcasterName is required", ErrInvalidInput)
	}
	if len(req.PodcasterName) > domain.MaxPodcasterNameLength {
		return fmt.Errorf("%w: podcasterName must be at most %d characters", ErrInvalidInput, domain.MaxPodcasterNameLength)
	}
	if len(req.Venue) > domain.MaxVenueLength {
		return fmt.Errorf("%w: venue must be at most %d characters", ErrInvalidInput, domain.MaxVenueLength)
	}
	if len(req.AboutPodcaster) > domain.MaxAboutPodcasterLength {
		return fmt.Errorf("%w: aboutPodcaster must be at most %d characters", ErrInvalidInput, domain.MaxAboutPodcasterLength)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}
	return nil
}

func toDomainFilter(req *models.ListPodcastsRequest) (domain.PodcastFilter, error) {
	filter := domain.PodcastFilter{
		Search: req.Search,
	}
	filter.Page, filter.Limit = normalizePaging(req.Page, req.Limit)

	if req.Status != nil {
		status, ok := models.ToDomainPodcastStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.DateFrom != nil {
		from, err := time.Parse(domain.DateFormat, *req.DateFrom)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid dateFrom: %v", ErrInvalidInput, err)
		}
		filter.DateFrom = &from
	}
	if req.DateTo != nil {
		to, err := time.Parse(domain.DateFormat, *req.DateTo)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid dateTo: %v", ErrInvalidInput, err)
		}
		filter.DateTo = &to
	}

	return filter, nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}
