package console

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
)

type fakeBookingAPI struct {
	mu        sync.Mutex
	listCalls []string
	page      *client.BookingPage
	updated   *client.Booking
}

func (f *fakeBookingAPI) ListBookings(_ context.Context, _ int64, page, limit int, search string) (*client.BookingPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, search)
	if f.page != nil {
		return f.page, nil
	}
	return &client.BookingPage{Page: page, Limit: limit}, nil
}

func (f *fakeBookingAPI) UpdateBookingStatus(_ context.Context, _ int64, _ *client.UpdateBookingStatusRequest) (*client.Booking, error) {
	return f.updated, nil
}

func (f *fakeBookingAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listCalls...)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newBookingView(api *fakeBookingAPI, now time.Time) *BookingStatusView {
	return NewBookingStatusView(api, &recordingNotifier{}, fixedClock{now: now}, nopLogger{}, 1)
}

func TestBookingStatusView_DebouncedSearch(t *testing.T) {
	api := &fakeBookingAPI{}
	view := newBookingView(api, time.Now())
	view.debouncer = NewDebouncer(30 * time.Millisecond)
	defer view.Close()

	// серия быстрых нажатий дает ровно один запрос с последним термом
	for _, term := range []string{"a", "al", "ali", "alic", "alice"} {
		view.SetSearch(context.Background(), term)
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(api.calls()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "alice", calls[0])
}

func TestBookingStatusView_UpdateStatusPatchesInPlace(t *testing.T) {
	notes := "duplicate request"
	api := &fakeBookingAPI{
		page: &client.BookingPage{
			Bookings: []client.Booking{
				{ID: 1, Status: "pending"},
				{ID: 2, Status: "pending"},
			},
			Total: 2, Page: 1, Limit: 10, TotalPages: 1,
		},
		updated: &client.Booking{ID: 2, Status: "rejected", AdminNotes: &notes},
	}
	view := newBookingView(api, time.Now())
	require.NoError(t, view.Load(context.Background(), 1))

	require.NoError(t, view.UpdateStatus(context.Background(), 2, "rejected", &notes))

	assert.Equal(t, "pending", view.Bookings[0].Status)
	assert.Equal(t, "rejected", view.Bookings[1].Status)
	require.NotNil(t, view.Bookings[1].AdminNotes)
	assert.Equal(t, notes, *view.Bookings[1].AdminNotes)
}

func TestBookingStatusView_CanCancel(t *testing.T) {
	booking := func(status string) client.Booking {
		return client.Booking{
			Status: status,
			Slot:   client.BookingSlot{Date: "2024-06-01", StartTime: "09:00"},
		}
	}

	t.Run("more than a day before the slot", func(t *testing.T) {
		view := newBookingView(&fakeBookingAPI{}, time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC))
		assert.True(t, view.CanCancel(booking("pending")))
		assert.True(t, view.CanCancel(booking("accepted")))
	})

	t.Run("less than a day before the slot", func(t *testing.T) {
		view := newBookingView(&fakeBookingAPI{}, time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC))
		assert.False(t, view.CanCancel(booking("pending")))
	})

	t.Run("terminal statuses are never cancellable", func(t *testing.T) {
		view := newBookingView(&fakeBookingAPI{}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
		assert.False(t, view.CanCancel(booking("cancelled")))
		assert.False(t, view.CanCancel(booking("rejected")))
	})

	t.Run("custom threshold", func(t *testing.T) {
		view := newBookingView(&fakeBookingAPI{}, time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC))
		view.CancellationNotice = 12 * time.Hour
		assert.True(t, view.CanCancel(booking("pending")))
	})
}
