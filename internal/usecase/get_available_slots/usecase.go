package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
	"github.com/chapternet/CN-PodcastService/pkg/ptr"
)

// UseCase use case для получения доступных для бронирования слотов
type UseCase struct {
	podcastRepo  PodcastRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	podcastRepo PodcastRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		podcastRepo:  podcastRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты подкаста на дату, в которые еще можно
// записаться. Прошедшая дата или дата вне периода подкаста дает пустой
// список, а не ошибку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: podcast=%d, date=%s",
		req.PodcastID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	podcast, err := uc.podcastRepo.GetByID(ctx, req.PodcastID)
	if err != nil {
		if errors.Is(err, podcastRepo.ErrPodcastNotFound) {
			uc.logger.Warn("GetAvailableSlots: podcast id=%d not found", req.PodcastID)
			return nil, ErrPodcastNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get podcast id=%d: %v", req.PodcastID, err)
		return nil, fmt.Errorf("%w: failed to get podcast: %v", ErrInternal, err)
	}

	if !podcast.IsActive || podcast.Status == domain.PodcastCancelled {
		uc.logger.Warn("GetAvailableSlots: podcast id=%d is not active", req.PodcastID)
		return nil, ErrPodcastInactive
	}

	now := uc.timeProvider.Now()

	empty := &Response{
		PodcastID: req.PodcastID,
		Date:      req.Date,
		Slots:     []AvailableSlot{},
	}

	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return empty, nil
	}

	if !podcast.ContainsDate(req.Date) {
		uc.logger.Info("GetAvailableSlots: date %s is outside podcast id=%d date range",
			req.Date.Format(domain.DateFormat), req.PodcastID)
		return empty, nil
	}

	status := domain.SlotAvailable
	filter := domain.SlotFilter{
		PodcastID: ptr.Ptr(req.PodcastID),
		Date:      ptr.Ptr(req.Date),
		Status:    &status,
		Page:      1,
		Limit:     domain.MaxPageLimit,
	}

	slots, _, err := uc.slotRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for podcast=%d: %v", req.PodcastID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	available := filterBookable(slots, req.Date, now)

	uc.logger.Info("GetAvailableSlots: %d of %d slots are bookable for podcast=%d on %s",
		len(available), len(slots), req.PodcastID, req.Date.Format(domain.DateFormat))

	return &Response{
		PodcastID: req.PodcastID,
		Date:      req.Date,
		Slots:     available,
	}, nil
}
