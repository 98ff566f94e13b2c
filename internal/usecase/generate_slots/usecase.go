package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
)

// UseCase use case генерации слотов подкаста
type UseCase struct {
	podcastRepo  PodcastRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	podcastRepo PodcastRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		podcastRepo:  podcastRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет генерацию слотов.
// Повторный запуск с теми же параметрами идемпотентен: существующие слоты
// пропускаются на уровне уникального индекса, а не падают ошибкой.
// Ноль созданных слотов — информационный успех.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: podcast=%d, dates=%d, window=%s-%s, duration=%d, capacity=%d",
		req.PodcastID, len(req.Dates), req.StartTime, req.EndTime, req.DurationMinutes, req.Capacity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем подкаст: существование, активность, попадание дат в период
	podcast, err := uc.podcastRepo.GetByID(ctx, req.PodcastID)
	if err != nil {
		if errors.Is(err, podcastRepo.ErrPodcastNotFound) {
			uc.logger.Warn("GenerateSlots: podcast id=%d not found", req.PodcastID)
			return nil, ErrPodcastNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get podcast id=%d: %v", req.PodcastID, err)
		return nil, fmt.Errorf("%w: failed to get podcast: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	podcast.Status = podcast.DeriveStatus(now)

	if err := validatePodcast(podcast, req); err != nil {
		uc.logger.Warn("GenerateSlots: podcast validation failed: %v", err)
		return nil, err
	}

	// 3. Разворачиваем запрос в конкретные слоты
	requested, err := expandSlots(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to expand slots: %v", ErrInternal, err)
	}

	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: the time window does not fit a single slot", ErrInvalidInput)
	}

	// 4. Вставляем пачку в транзакции; дубликаты отсеет уникальный индекс
	var created []*domain.Slot

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = uc.slotRepo.CreateBatch(txCtx, requested)
		if txErr != nil {
			uc.logger.Error("GenerateSlots: failed to create slots: %v", txErr)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, txErr)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	skipped := skippedDescriptions(requested, created)

	uc.logger.Info("GenerateSlots: podcast=%d, created=%d, skipped=%d",
		req.PodcastID, len(created), len(skipped))

	return buildResponse(created, skipped), nil
}

func buildResponse(created []*domain.Slot, skipped []string) *Response {
	resp := &Response{
		Created: make([]GeneratedSlot, 0, len(created)),
		Skipped: skipped,
	}

	for _, s := range created {
		resp.Created = append(resp.Created, GeneratedSlot{
			ID:          s.ID,
			PodcastID:   s.PodcastID,
			Date:        s.Date,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Capacity:    s.Capacity,
			BookedCount: s.BookedCount,
			Status:      string(s.Status),
			CreatedAt:   s.CreatedAt,
		})
	}

	return resp
}
