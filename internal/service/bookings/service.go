package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/queue"
	bookingRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/booking"
	slotRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/slot"
	"github.com/chapternet/CN-PodcastService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo       BookingRepository
	slotRepo          SlotRepository
	publisher         EventPublisher
	txManager         TransactionManager
	timeProvider      TimeProvider
	cancelNoticeHours int
	logger            Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// cancellationNoticeHours задает срок уведомления для отмены участником;
// при нуле или отрицательном значении используется значение по умолчанию.
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	cancellationNoticeHours int,
	logger Logger,
) *Service {
	if cancellationNoticeHours <= 0 {
		cancellationNoticeHours = domain.DefaultCancellationNoticeHours
	}
	return &Service{
		bookingRepo:       bookingRepo,
		slotRepo:          slotRepo,
		publisher:         publisher,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		cancelNoticeHours: cancellationNoticeHours,
		logger:            logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetBooking")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// ListByPodcast получает страницу бронирований подкаста.
// Search фильтрует по имени и email участника на стороне сервера.
func (s *Service) ListByPodcast(ctx context.Context, req *models.ListPodcastBookingsRequest) (*models.BookingListResponse, error) {
	if req.PodcastID <= 0 {
		return nil, fmt.Errorf("%w: podcastId must be positive", ErrInvalidInput)
	}

	page, limit := normalizePaging(req.Page, req.Limit)

	filter := domain.BookingFilter{
		PodcastID: req.PodcastID,
		SlotID:    req.SlotID,
		Search:    req.Search,
		Page:      page,
		Limit:     limit,
	}

	bookings, total, err := s.bookingRepo.ListByPodcast(ctx, filter)
	if err != nil {
		s.logger.Error("ListPodcastBookings: repository error for podcast=%d: %v", req.PodcastID, err)
		return nil, fmt.Errorf("%w: ListByPodcast - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPodcastBookings: fetched %d of %d bookings for podcast=%d", len(bookings), total, req.PodcastID)
	return models.FromDomainBookingList(bookings, total, page, limit), nil
}

// ListByUser получает страницу бронирований участника
func (s *Service) ListByUser(ctx context.Context, userID int64, page, limit int) (*models.BookingListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	page, limit = normalizePaging(page, limit)

	bookings, total, err := s.bookingRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("ListUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, total, page, limit), nil
}

// UpdateStatus применяет действие администратора к бронированию.
// Любое из четырех действий принимается из любого текущего статуса;
// граф переходов намеренно не ограничивается. Счетчик мест слота
// корректируется, когда действие меняет "занимает место" на
// "освобождает" или наоборот, в одной сериализуемой транзакции.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateBookingStatus: booking=%d, action=%q", req.BookingID, req.Action)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return nil, fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	newStatus, ok := models.ToDomainBookingStatus(req.Action)
	if !ok {
		s.logger.Warn("UpdateBookingStatus: unknown action %q", req.Action)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Action)
	}

	var oldStatus domain.BookingStatus
	var slotID int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, txErr := s.getBooking(txCtx, req.BookingID, "UpdateBookingStatus")
		if txErr != nil {
			return txErr
		}

		oldStatus = booking.Status
		slotID = booking.SlotID

		wasHolding := booking.HoldsSeat()
		booking.Status = newStatus
		willHold := booking.HoldsSeat()

		// Возврат места в заполненный слот идет через IncrementBooked
		// с теми же guard-условиями, что и создание бронирования
		if !wasHolding && willHold {
			if txErr = s.slotRepo.IncrementBooked(txCtx, slotID); txErr != nil {
				if errors.Is(txErr, slotRepo.ErrSlotNotAvailable) {
					s.logger.Warn("UpdateBookingStatus: slot id=%d is full, cannot restore booking=%d", slotID, req.BookingID)
					return ErrSlotFull
				}
				s.logger.Error("UpdateBookingStatus: failed to increment slot id=%d: %v", slotID, txErr)
				return fmt.Errorf("%w: UpdateStatus - increment slot: %v", ErrInternal, txErr)
			}
		}
		if wasHolding && !willHold {
			if txErr = s.slotRepo.DecrementBooked(txCtx, slotID); txErr != nil {
				s.logger.Error("UpdateBookingStatus: failed to decrement slot id=%d: %v", slotID, txErr)
				return fmt.Errorf("%w: UpdateStatus - decrement slot: %v", ErrInternal, txErr)
			}
		}

		if txErr = s.bookingRepo.UpdateStatus(txCtx, req.BookingID, newStatus, req.AdminNotes); txErr != nil {
			if errors.Is(txErr, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateBookingStatus: repository error for booking=%d: %v", req.BookingID, txErr)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, txErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateBookingStatus: booking=%d %s -> %s", req.BookingID, oldStatus, newStatus)

	// Событие публикуется вне транзакции; ошибка не ломает запрос
	updated, err := s.getBooking(ctx, req.BookingID, "UpdateBookingStatus")
	if err != nil {
		return nil, err
	}

	if pubErr := s.publisher.Publish(ctx, queue.RoutingKeyBookingStatusChanged, queue.BookingEvent{
		BookingID: updated.ID,
		SlotID:    updated.SlotID,
		PodcastID: updated.PodcastID,
		UserID:    updated.UserID,
		Status:    string(newStatus),
		OldStatus: string(oldStatus),
		At:        s.timeProvider.Now(),
	}); pubErr != nil {
		s.logger.Warn("UpdateBookingStatus: failed to publish event for booking=%d: %v", req.BookingID, pubErr)
	}

	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет собственное бронирование участника. Отмена доступна
// только до истечения срока уведомления: слот должен начинаться позже,
// чем через настроенное количество часов. Место освобождается в той же
// сериализуемой транзакции.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("CancelBooking: booking=%d, user=%d", bookingID, userID)

	if bookingID <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and userId must be positive", ErrInvalidInput)
	}

	var oldStatus domain.BookingStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, txErr := s.getBooking(txCtx, bookingID, "CancelBooking")
		if txErr != nil {
			return txErr
		}

		if booking.UserID != userID {
			s.logger.Warn("CancelBooking: booking=%d belongs to user=%d, not user=%d", bookingID, booking.UserID, userID)
			return ErrForbidden
		}

		if !booking.CanBeCancelledBy(s.timeProvider.Now(), s.cancelNoticeHours) {
			s.logger.Warn("CancelBooking: booking=%d is no longer cancellable (status=%s, slot=%s %s)",
				bookingID, booking.Status, booking.SlotDate.Format(domain.DateFormat), booking.SlotStartTime)
			return ErrCannotCancel
		}

		oldStatus = booking.Status

		if booking.HoldsSeat() {
			if txErr = s.slotRepo.DecrementBooked(txCtx, booking.SlotID); txErr != nil {
				s.logger.Error("CancelBooking: failed to decrement slot id=%d: %v", booking.SlotID, txErr)
				return fmt.Errorf("%w: Cancel - decrement slot: %v", ErrInternal, txErr)
			}
		}

		if txErr = s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.BookingCancelled, nil); txErr != nil {
			if errors.Is(txErr, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("CancelBooking: repository error for booking=%d: %v", bookingID, txErr)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, txErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CancelBooking: booking=%d %s -> %s", bookingID, oldStatus, domain.BookingCancelled)

	updated, err := s.getBooking(ctx, bookingID, "CancelBooking")
	if err != nil {
		return nil, err
	}

	if pubErr := s.publisher.Publish(ctx, queue.RoutingKeyBookingStatusChanged, queue.BookingEvent{
		BookingID: updated.ID,
		SlotID:    updated.SlotID,
		PodcastID: updated.PodcastID,
		UserID:    updated.UserID,
		Status:    string(domain.BookingCancelled),
		OldStatus: string(oldStatus),
		At:        s.timeProvider.Now(),
	}); pubErr != nil {
		s.logger.Warn("CancelBooking: failed to publish event for booking=%d: %v", bookingID, pubErr)
	}

	return models.FromDomainBooking(updated), nil
}

// Stats считает бронирования участника по статусам
func (s *Service) Stats(ctx context.Context, userID int64) (*models.BookingStatsResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	stats, err := s.bookingRepo.StatsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("BookingStats: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
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
