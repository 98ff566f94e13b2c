package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/queue"
	slotRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/slot"
	memberClient "github.com/chapternet/CN-PodcastService/internal/integrations/memberservice"
)

// UseCase use case создания бронирования
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	memberClient MemberServiceClient
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	memberClient MemberServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		memberClient: memberClient,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет создание бронирования.
// Проверка вместимости и инкремент счетчика идут в сериализуемой
// транзакции: два конкурентных запроса на последнее место не могут
// пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, user=%d", req.SlotID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем профиль участника с graceful degradation:
	// при недоступном MemberService бронирование создается без снимка профиля
	var member *memberClient.Member

	member, err := uc.memberClient.GetMemberWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("CreateBooking: member id=%d not found", req.UserID)
			return nil, ErrMemberNotFound
		}
		if errors.Is(err, memberClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: proceeding without member snapshot for user=%d", req.UserID)
			member = nil
		} else {
			uc.logger.Error("CreateBooking: failed to get member id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
		}
	}

	var result *domain.Booking
	var slot *domain.Slot

	// 3. Транзакция: блокируем слот, проверяем, инкрементируем, создаем
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error

		// 3.1. Слот читается с FOR UPDATE внутри транзакции
		slot, txErr = uc.slotRepo.GetByID(txCtx, req.SlotID)
		if txErr != nil {
			if errors.Is(txErr, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, txErr)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, txErr)
		}

		// 3.2. Проверяем доступность и время
		if txErr = validateSlot(slot, now); txErr != nil {
			uc.logger.Warn("CreateBooking: slot id=%d validation failed: %v", req.SlotID, txErr)
			return txErr
		}

		// 3.3. Инкремент счетчика; при заполнении слот переходит в booked
		if txErr = uc.slotRepo.IncrementBooked(txCtx, req.SlotID); txErr != nil {
			if errors.Is(txErr, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot id=%d became unavailable", req.SlotID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to increment slot id=%d: %v", req.SlotID, txErr)
			return fmt.Errorf("%w: failed to increment slot: %v", ErrInternal, txErr)
		}

		// 3.4. Создаем бронирование с денормализацией данных участника
		booking := &domain.Booking{
			SlotID:     req.SlotID,
			PodcastID:  slot.PodcastID,
			UserID:     req.UserID,
			Status:     domain.BookingPending,
			AdminNotes: req.Notes,
		}
		if member != nil {
			booking.MemberName = member.Name
			booking.MemberEmail = member.Email
			booking.MemberMobile = member.MobileNumber
			booking.MemberChapter = member.ChapterName
		}

		result, txErr = uc.bookingRepo.Create(txCtx, booking)
		if txErr != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", txErr)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, txErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 4. Публикуем событие вне транзакции; ошибка публикации не ломает запрос
	if pubErr := uc.publisher.Publish(ctx, queue.RoutingKeyBookingCreated, queue.BookingEvent{
		BookingID: result.ID,
		SlotID:    result.SlotID,
		PodcastID: result.PodcastID,
		UserID:    result.UserID,
		Status:    string(result.Status),
		At:        now,
	}); pubErr != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, pubErr)
	}

	return &Response{
		ID:            result.ID,
		SlotID:        result.SlotID,
		PodcastID:     result.PodcastID,
		UserID:        result.UserID,
		Status:        string(result.Status),
		MemberName:    result.MemberName,
		MemberEmail:   result.MemberEmail,
		MemberMobile:  result.MemberMobile,
		MemberChapter: result.MemberChapter,
		AdminNotes:    result.AdminNotes,
		SlotDate:      slot.Date,
		SlotStartTime: slot.StartTime,
		SlotEndTime:   slot.EndTime,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
