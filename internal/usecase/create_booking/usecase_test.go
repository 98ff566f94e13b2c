package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/queue"
	slotRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/slot"
	"github.com/chapternet/CN-PodcastService/internal/integrations/memberservice"
	"github.com/chapternet/CN-PodcastService/pkg/ptr"
)

type fakeSlotRepo struct {
	slot         *domain.Slot
	getErr       error
	incrementErr error
	incremented  int
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) IncrementBooked(_ context.Context, _ int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented++
	return nil
}

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b.ID = 42
	b.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return b, nil
}

type fakeMemberClient struct {
	member *memberservice.Member
	err    error
}

func (f *fakeMemberClient) GetMemberWithGracefulDegradation(_ context.Context, _ int64) (*memberservice.Member, error) {
	return f.member, f.err
}

type fakePublisher struct {
	events []queue.BookingEvent
	keys   []string
}

func (f *fakePublisher) Publish(_ context.Context, key string, event queue.BookingEvent) error {
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookableSlot() *domain.Slot {
	return &domain.Slot{
		ID:          7,
		PodcastID:   1,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Capacity:    5,
		BookedCount: 2,
		Status:      domain.SlotAvailable,
		IsActive:    true,
	}
}

func member() *memberservice.Member {
	return &memberservice.Member{
		ID:           10,
		Name:         "Jordan Hale",
		Email:        "jordan@example.com",
		MobileNumber: ptr.Ptr("+1-555-0101"),
		ChapterName:  ptr.Ptr("Downtown"),
	}
}

func newUseCase(sr *fakeSlotRepo, br *fakeBookingRepo, mc *fakeMemberClient, pub *fakePublisher) *UseCase {
	uc := NewUseCase(sr, br, mc, pub, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecuteCreatesPendingBooking(t *testing.T) {
	sr := &fakeSlotRepo{slot: bookableSlot()}
	br := &fakeBookingRepo{}
	pub := &fakePublisher{}
	uc := newUseCase(sr, br, &fakeMemberClient{member: member()}, pub)

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.BookingPending), resp.Status)
	assert.Equal(t, "Jordan Hale", resp.MemberName)
	assert.Equal(t, "jordan@example.com", resp.MemberEmail)
	assert.Equal(t, int64(1), resp.PodcastID)
	assert.Equal(t, 1, sr.incremented)

	// Событие опубликовано с корректным routing key
	require.Len(t, pub.keys, 1)
	assert.Equal(t, queue.RoutingKeyBookingCreated, pub.keys[0])
	assert.Equal(t, int64(42), pub.events[0].BookingID)
}

func TestExecuteSlotFull(t *testing.T) {
	slot := bookableSlot()
	slot.BookedCount = slot.Capacity
	slot.Status = domain.SlotBooked

	sr := &fakeSlotRepo{slot: slot}
	uc := newUseCase(sr, &fakeBookingRepo{}, &fakeMemberClient{member: member()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, sr.incremented)
}

func TestExecuteRaceOnLastSeat(t *testing.T) {
	// Слот выглядел свободным при чтении, но инкремент не прошел:
	// конкурентная транзакция успела занять последнее место
	sr := &fakeSlotRepo{slot: bookableSlot(), incrementErr: slotRepo.ErrSlotNotAvailable}
	br := &fakeBookingRepo{}
	uc := newUseCase(sr, br, &fakeMemberClient{member: member()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, br.created)
}

func TestExecuteSlotInPast(t *testing.T) {
	slot := bookableSlot()
	slot.Date = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{}, &fakeMemberClient{member: member()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecuteSlotNotFound(t *testing.T) {
	uc := newUseCase(&fakeSlotRepo{getErr: slotRepo.ErrSlotNotFound}, &fakeBookingRepo{}, &fakeMemberClient{member: member()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecuteMemberNotFound(t *testing.T) {
	uc := newUseCase(&fakeSlotRepo{slot: bookableSlot()}, &fakeBookingRepo{}, &fakeMemberClient{err: memberservice.ErrMemberNotFound}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecuteMemberServiceDegraded(t *testing.T) {
	// MemberService недоступен: бронирование создается без снимка профиля
	br := &fakeBookingRepo{}
	uc := newUseCase(&fakeSlotRepo{slot: bookableSlot()}, br, &fakeMemberClient{err: memberservice.ErrServiceDegraded}, &fakePublisher{})

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 10})
	require.NoError(t, err)

	assert.Empty(t, resp.MemberName)
	assert.Empty(t, resp.MemberEmail)
	assert.Equal(t, int64(10), resp.UserID)
}

func TestExecuteValidation(t *testing.T) {
	uc := newUseCase(&fakeSlotRepo{slot: bookableSlot()}, &fakeBookingRepo{}, &fakeMemberClient{member: member()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 0, UserID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SlotID: 7, UserID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
