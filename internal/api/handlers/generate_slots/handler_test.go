package generate_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generateSlots "github.com/chapternet/CN-PodcastService/internal/usecase/generate_slots"
)

type fakeUseCase struct {
	req  *generateSlots.Request
	resp *generateSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *generateSlots.Request) (*generateSlots.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc *fakeUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/podcasts/{podcastId}/slots/generate",
		NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"dates": ["2024-06-01", "2024-06-02"],
	"startTime": "10:00",
	"endTime": "12:00",
	"durationMinutes": 60,
	"capacity": 5
}`

func TestHandler_Handle(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		uc := &fakeUseCase{
			resp: &generateSlots.Response{
				Created: []generateSlots.GeneratedSlot{
					{
						ID:        10,
						PodcastID: 7,
						Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
						StartTime: "10:00",
						EndTime:   "11:00",
						Capacity:  5,
						Status:    "available",
					},
				},
				Skipped: []string{"2024-06-02 10:00 already exists"},
			},
		}

		rec := doRequest(t, newRouter(uc), "/api/v1/podcasts/7/slots/generate", validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, uc.req)
		assert.Equal(t, int64(7), uc.req.PodcastID)
		assert.Len(t, uc.req.Dates, 2)

		var resp GenerateSlotsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, "2024-06-01", resp.Slots[0].Date)
		assert.Equal(t, "10:00", resp.Slots[0].StartTime)
		assert.Equal(t, []string{"2024-06-02 10:00 already exists"}, resp.Errors)
	})

	t.Run("invalid podcast id", func(t *testing.T) {
		rec := doRequest(t, newRouter(&fakeUseCase{}), "/api/v1/podcasts/abc/slots/generate", validBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := doRequest(t, newRouter(uc), "/api/v1/podcasts/7/slots/generate", `{"dates": 5}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.req)
	})

	t.Run("bad time format", func(t *testing.T) {
		uc := &fakeUseCase{}
		body := `{"dates": ["2024-06-01"], "startTime": "25:00", "endTime": "12:00", "durationMinutes": 60, "capacity": 5}`
		rec := doRequest(t, newRouter(uc), "/api/v1/podcasts/7/slots/generate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.req)
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{"podcast not found", generateSlots.ErrPodcastNotFound, http.StatusNotFound},
			{"podcast inactive", generateSlots.ErrPodcastInactive, http.StatusConflict},
			{"date out of range", generateSlots.ErrDateOutOfRange, http.StatusBadRequest},
			{"invalid input", generateSlots.ErrInvalidInput, http.StatusBadRequest},
			{"internal", generateSlots.ErrInternal, http.StatusInternalServerError},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := doRequest(t, newRouter(&fakeUseCase{err: tc.err}),
					"/api/v1/podcasts/7/slots/generate", validBody)
				assert.Equal(t, tc.code, rec.Code)
			})
		}
	})
}
