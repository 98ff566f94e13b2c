package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
)

type fakeGeneratorAPI struct {
	calls  []*client.GenerateSlotsRequest
	result *client.GenerateSlotsResult
	err    error
}

func (f *fakeGeneratorAPI) GenerateSlots(_ context.Context, _ int64, req *client.GenerateSlotsRequest) (*client.GenerateSlotsResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.failures = append(n.failures, message) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validForm() *SlotGeneratorForm {
	return &SlotGeneratorForm{
		PodcastID:       1,
		StartDate:       "2024-06-01",
		EndDate:         "2024-06-03",
		StartTime:       "10:00",
		EndTime:         "12:00",
		DurationMinutes: 60,
		Capacity:        5,
	}
}

func TestExpandDateRange(t *testing.T) {
	t.Run("inclusive range", func(t *testing.T) {
		dates, err := ExpandDateRange("2024-06-01", "2024-06-03")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, dates)
	})

	t.Run("single day", func(t *testing.T) {
		dates, err := ExpandDateRange("2024-06-01", "2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-01"}, dates)
	})

	t.Run("month boundary", func(t *testing.T) {
		dates, err := ExpandDateRange("2024-01-30", "2024-02-02")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ExpandDateRange("2024-06-03", "2024-06-01")
		require.Error(t, err)

		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "startDate", fieldErr.Field)
	})
}

func TestSlotGenerator_Generate(t *testing.T) {
	t.Run("submits expanded dates", func(t *testing.T) {
		api := &fakeGeneratorAPI{result: &client.GenerateSlotsResult{
			Slots: make([]client.Slot, 6),
		}}
		notify := &recordingNotifier{}
		gen := NewSlotGenerator(api, notify, nopLogger{})

		require.NoError(t, gen.Generate(context.Background(), validForm()))

		require.Len(t, api.calls, 1)
		assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, api.calls[0].Dates)
		assert.Equal(t, "10:00", api.calls[0].StartTime)
		assert.Equal(t, "12:00", api.calls[0].EndTime)
		assert.Equal(t, 60, api.calls[0].DurationMinutes)
		assert.Equal(t, 5, api.calls[0].Capacity)
		assert.Equal(t, []string{"6 slots generated"}, notify.successes)
	})

	t.Run("start after end blocks the call", func(t *testing.T) {
		api := &fakeGeneratorAPI{}
		notify := &recordingNotifier{}
		gen := NewSlotGenerator(api, notify, nopLogger{})

		form := validForm()
		form.StartDate = "2024-06-03"
		form.EndDate = "2024-06-01"

		require.Error(t, gen.Generate(context.Background(), form))
		assert.Empty(t, api.calls)
		assert.NotEmpty(t, notify.failures)
	})

	t.Run("zero created is informational success", func(t *testing.T) {
		api := &fakeGeneratorAPI{result: &client.GenerateSlotsResult{
			Errors: []string{"slot 2024-06-01 10:00-11:00 already exists"},
		}}
		notify := &recordingNotifier{}
		gen := NewSlotGenerator(api, notify, nopLogger{})

		require.NoError(t, gen.Generate(context.Background(), validForm()))
		assert.Equal(t, []string{msgNoNewSlots}, notify.successes)
		assert.Empty(t, notify.failures)
	})

	t.Run("remote failure surfaces generic message", func(t *testing.T) {
		api := &fakeGeneratorAPI{err: errors.New("boom")}
		notify := &recordingNotifier{}
		gen := NewSlotGenerator(api, notify, nopLogger{})

		require.Error(t, gen.Generate(context.Background(), validForm()))
		assert.Equal(t, []string{msgFailedToGenerate}, notify.failures)
	})

	t.Run("single use", func(t *testing.T) {
		api := &fakeGeneratorAPI{result: &client.GenerateSlotsResult{Slots: make([]client.Slot, 1)}}
		gen := NewSlotGenerator(api, &recordingNotifier{}, nopLogger{})

		require.NoError(t, gen.Generate(context.Background(), validForm()))
		assert.ErrorIs(t, gen.Generate(context.Background(), validForm()), ErrGeneratorUsed)
		assert.Len(t, api.calls, 1)
	})

	t.Run("validation names the field", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*SlotGeneratorForm)
			field  string
		}{
			{"missing podcast", func(f *SlotGeneratorForm) { f.PodcastID = 0 }, "podcastId"},
			{"bad start time", func(f *SlotGeneratorForm) { f.StartTime = "25:00" }, "startTime"},
			{"bad end time", func(f *SlotGeneratorForm) { f.EndTime = "12:61" }, "endTime"},
			{"window inverted", func(f *SlotGeneratorForm) { f.StartTime, f.EndTime = "12:00", "10:00" }, "startTime"},
			{"zero duration", func(f *SlotGeneratorForm) { f.DurationMinutes = 0 }, "duration"},
			{"zero capacity", func(f *SlotGeneratorForm) { f.Capacity = 0 }, "capacity"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api := &fakeGeneratorAPI{}
				gen := NewSlotGenerator(api, &recordingNotifier{}, nopLogger{})

				form := validForm()
				tt.mutate(form)

				err := gen.Generate(context.Background(), form)
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, tt.field, fieldErr.Field)
				assert.Empty(t, api.calls)
			})
		}
	})
}
