package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	slotRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/slot"
	"github.com/chapternet/CN-PodcastService/internal/service/slots/models"
)

// Service сервис для работы со слотами
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// List получает страницу слотов по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListSlots: invalid filter: %v", err)
		return nil, err
	}

	slots, total, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSlots: fetched %d of %d slots (page=%d)", len(slots), total, filter.Page)
	return models.FromDomainSlotList(slots, total, filter.Page, filter.Limit), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetSlot: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetSlot: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlot(slot), nil
}

// Update обновляет вместимость и/или статус слота
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: id=%d", id)

	if req.Capacity == nil && req.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.Capacity != nil && (*req.Capacity < domain.MinSlotCapacity || *req.Capacity > domain.MaxSlotCapacity) {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	var status *domain.SlotStatus
	if req.Status != nil {
		converted, ok := models.ToDomainSlotStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		status = &converted
	}

	if err := s.slotRepo.Update(ctx, id, req.Capacity, status); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("UpdateSlot: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrCapacityBelowBooked):
			s.logger.Warn("UpdateSlot: slot id=%d capacity below booked count", id)
			return nil, ErrCapacityBelowBooked
		default:
			s.logger.Error("UpdateSlot: repository error for id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет один слот
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSlot: id=%d", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("DeleteSlot: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("DeleteSlot: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// BulkDelete удаляет выбранные слоты одной транзакцией.
// Пустой список отклоняется до обращения к БД.
func (s *Service) BulkDelete(ctx context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error) {
	if len(req.SlotIDs) == 0 {
		s.logger.Warn("BulkDeleteSlots: empty selection")
		return nil, ErrEmptySelection
	}

	s.logger.Info("BulkDeleteSlots: deleting %d slots", len(req.SlotIDs))

	var deleted int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		deleted, txErr = s.slotRepo.DeleteByIDs(txCtx, req.SlotIDs)
		if txErr != nil {
			s.logger.Error("BulkDeleteSlots: repository error: %v", txErr)
			return fmt.Errorf("%w: BulkDelete - repository error: %v", ErrInternal, txErr)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("BulkDeleteSlots: deleted %d of %d requested", deleted, len(req.SlotIDs))
	return &models.BulkDeleteResponse{Deleted: deleted}, nil
}

func toDomainFilter(req *models.ListSlotsRequest) (domain.SlotFilter, error) {
	filter := domain.SlotFilter{
		PodcastID: req.PodcastID,
	}

	filter.Page = req.Page
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Limit = req.Limit
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultSlotsPageLimit
	}
	if filter.Limit > domain.MaxPageLimit {
		filter.Limit = domain.MaxPageLimit
	}

	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
		}
		filter.Date = &date
	}

	if req.Status != nil {
		status, ok := models.ToDomainSlotStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}
