package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/internal/infra/queue"
	slotRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/slot"
	"github.com/chapternet/CN-PodcastService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	updatedStatus *domain.BookingStatus
	updatedNotes  *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	b := *f.booking
	if f.updatedStatus != nil {
		b.Status = *f.updatedStatus
	}
	return &b, nil
}

func (f *fakeBookingRepo) ListByPodcast(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, int, error) {
	return []*domain.Booking{f.booking}, 1, nil
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, _ int64, _, _ int) ([]*domain.Booking, int, error) {
	return []*domain.Booking{f.booking}, 1, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus, notes *string) error {
	f.updatedStatus = &status
	f.updatedNotes = notes
	return nil
}

func (f *fakeBookingRepo) StatsByUser(_ context.Context, _ int64) (*domain.BookingStats, error) {
	return &domain.BookingStats{Total: 3, Pending: 1, Accepted: 2}, nil
}

type fakeSlotRepo struct {
	increments   int
	decrements   int
	incrementErr error
}

func (f *fakeSlotRepo) IncrementBooked(_ context.Context, _ int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.increments++
	return nil
}

func (f *fakeSlotRepo) DecrementBooked(_ context.Context, _ int64) error {
	f.decrements++
	return nil
}

type fakePublisher struct {
	events []queue.BookingEvent
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event queue.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		SlotID:        7,
		PodcastID:     2,
		UserID:        10,
		Status:        domain.BookingPending,
		MemberName:    "Jordan Hale",
		SlotDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SlotStartTime: "09:00",
		SlotEndTime:   "10:00",
		SlotCapacity:  5,
	}
}

func newService(br *fakeBookingRepo, sr *fakeSlotRepo, pub *fakePublisher) *Service {
	return NewService(br, sr, pub, &fakeTxManager{}, 0, nopLogger{})
}

func TestUpdateStatusRejectReleasesSeat(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}
	sr := &fakeSlotRepo{}
	pub := &fakePublisher{}

	resp, err := newService(br, sr, pub).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Action:    "rejected",
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, 1, sr.decrements)
	assert.Zero(t, sr.increments)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "rejected", pub.events[0].Status)
	assert.Equal(t, "pending", pub.events[0].OldStatus)
}

func TestUpdateStatusAcceptKeepsSeat(t *testing.T) {
	// pending уже занимает место: подтверждение не трогает счетчик
	br := &fakeBookingRepo{booking: pendingBooking()}
	sr := &fakeSlotRepo{}

	resp, err := newService(br, sr, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Action:    "accepted",
	})
	require.NoError(t, err)

	assert.Equal(t, "accepted", resp.Status)
	assert.Zero(t, sr.increments)
	assert.Zero(t, sr.decrements)
}

func TestUpdateStatusRestoreTakesSeat(t *testing.T) {
	// Возврат отмененного бронирования в accepted снова занимает место
	b := pendingBooking()
	b.Status = domain.BookingCancelled

	br := &fakeBookingRepo{booking: b}
	sr := &fakeSlotRepo{}

	resp, err := newService(br, sr, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Action:    "accepted",
	})
	require.NoError(t, err)

	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, 1, sr.increments)
	assert.Zero(t, sr.decrements)
}

func TestUpdateStatusRestoreIntoFullSlot(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.BookingRejected

	br := &fakeBookingRepo{booking: b}
	sr := &fakeSlotRepo{incrementErr: slotRepo.ErrSlotNotAvailable}

	_, err := newService(br, sr, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Action:    "accepted",
	})
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Nil(t, br.updatedStatus)
}

func TestUpdateStatusUnknownAction(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}

	_, err := newService(br, &fakeSlotRepo{}, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Action:    "approved",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusPassesAdminNotes(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}
	notes := "double booked, moved to next week"

	_, err := newService(br, &fakeSlotRepo{}, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID:  1,
		Action:     "cancelled",
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	require.NotNil(t, br.updatedNotes)
	assert.Equal(t, notes, *br.updatedNotes)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func TestCancelReleasesSeat(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}
	sr := &fakeSlotRepo{}
	pub := &fakePublisher{}

	svc := newService(br, sr, pub)
	svc.timeProvider = fixedTime{now: time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)}

	resp, err := svc.Cancel(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 1, sr.decrements)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "cancelled", pub.events[0].Status)
	assert.Equal(t, "pending", pub.events[0].OldStatus)
}

func TestCancelForbiddenForOtherUser(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}
	sr := &fakeSlotRepo{}

	svc := newService(br, sr, &fakePublisher{})
	svc.timeProvider = fixedTime{now: time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)}

	_, err := svc.Cancel(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, sr.decrements)
	assert.Nil(t, br.updatedStatus)
}

func TestCancelTooCloseToSlotStart(t *testing.T) {
	// До слота 2024-06-01 09:00 остается меньше суток
	br := &fakeBookingRepo{booking: pendingBooking()}
	sr := &fakeSlotRepo{}

	svc := newService(br, sr, &fakePublisher{})
	svc.timeProvider = fixedTime{now: time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC)}

	_, err := svc.Cancel(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, sr.decrements)
}

func TestCancelHonorsConfiguredNoticeHours(t *testing.T) {
	// До слота 2024-06-01 09:00 около 49 часов: при сроке по умолчанию
	// отмена прошла бы, при 72 часах — уже нет
	br := &fakeBookingRepo{booking: pendingBooking()}
	sr := &fakeSlotRepo{}

	svc := NewService(br, sr, &fakePublisher{}, &fakeTxManager{}, 72, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)}

	_, err := svc.Cancel(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, sr.decrements)
}

func TestCancelAlreadyTerminal(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.BookingRejected

	br := &fakeBookingRepo{booking: b}
	sr := &fakeSlotRepo{}

	svc := newService(br, sr, &fakePublisher{})
	svc.timeProvider = fixedTime{now: time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)}

	_, err := svc.Cancel(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, sr.decrements)
}

func TestListByPodcastPagination(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}

	resp, err := newService(br, &fakeSlotRepo{}, &fakePublisher{}).ListByPodcast(context.Background(), &models.ListPodcastBookingsRequest{
		PodcastID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, domain.DefaultPageLimit, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "2024-06-01", resp.Bookings[0].Slot.Date)
}

func TestStats(t *testing.T) {
	br := &fakeBookingRepo{booking: pendingBooking()}

	stats, err := newService(br, &fakeSlotRepo{}, &fakePublisher{}).Stats(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Accepted)
}
