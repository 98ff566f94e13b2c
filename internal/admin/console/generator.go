package console

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
	"github.com/chapternet/CN-PodcastService/internal/domain"
)

const (
	msgFailedToGenerate = "failed to generate slots"
	msgNoNewSlots       = "no new slots were created"
)

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// SlotGeneratorForm форма генерации слотов
type SlotGeneratorForm struct {
	PodcastID       int64
	StartDate       string // "2006-01-02", включительно
	EndDate         string
	StartTime       string // "HH:mm"
	EndTime         string
	DurationMinutes int
	Capacity        int
}

// SlotGenerator одноразовый генератор слотов: разворачивает диапазон дат
// в явный список и отправляет один пакетный запрос. Для повторной
// отправки создается новый экземпляр.
type SlotGenerator struct {
	api    SlotGeneratorAPI
	notify Notifier
	log    Logger

	loading bool
	used    bool
}

// NewSlotGenerator создает новый генератор
func NewSlotGenerator(api SlotGeneratorAPI, notify Notifier, log Logger) *SlotGenerator {
	return &SlotGenerator{
		api:    api,
		notify: notify,
		log:    log,
	}
}

// Generate валидирует форму, разворачивает даты и отправляет пакет.
// Ноль созданных слотов — информационный успех, не ошибка.
func (g *SlotGenerator) Generate(ctx context.Context, form *SlotGeneratorForm) error {
	if g.loading {
		return ErrBusy
	}
	if g.used {
		return ErrGeneratorUsed
	}

	if err := validateGeneratorForm(form); err != nil {
		g.log.Warn("SlotGenerator: validation failed: %v", err)
		g.notify.Error(err.Error())
		return err
	}

	dates, err := ExpandDateRange(form.StartDate, form.EndDate)
	if err != nil {
		g.notify.Error(err.Error())
		return err
	}

	g.loading = true
	defer func() { g.loading = false }()

	result, err := g.api.GenerateSlots(ctx, form.PodcastID, &client.GenerateSlotsRequest{
		Dates:           dates,
		StartTime:       form.StartTime,
		EndTime:         form.EndTime,
		DurationMinutes: form.DurationMinutes,
		Capacity:        form.Capacity,
	})
	if err != nil {
		g.log.Error("SlotGenerator: request failed for podcast=%d: %v", form.PodcastID, err)
		g.notify.Error(msgFailedToGenerate)
		return err
	}

	g.used = true

	if len(result.Slots) == 0 {
		g.notify.Success(msgNoNewSlots)
		return nil
	}

	g.notify.Success(fmt.Sprintf("%d slots generated", len(result.Slots)))
	return nil
}

// ExpandDateRange разворачивает включительный диапазон дат в упорядоченный
// список ISO дат с шагом в один день
func ExpandDateRange(startDate, endDate string) ([]string, error) {
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return nil, &FieldError{Field: "startDate", Reason: "must be a valid date"}
	}
	end, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		return nil, &FieldError{Field: "endDate", Reason: "must be a valid date"}
	}
	if start.After(end) {
		return nil, &FieldError{Field: "startDate", Reason: "must not be after endDate"}
	}

	var dates []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day.Format(domain.DateFormat))
	}
	return dates, nil
}

func validateGeneratorForm(form *SlotGeneratorForm) error {
	if form.PodcastID <= 0 {
		return &FieldError{Field: "podcastId", Reason: "is required"}
	}
	if form.StartDate == "" {
		return &FieldError{Field: "startDate", Reason: "is required"}
	}
	if form.EndDate == "" {
		return &FieldError{Field: "endDate", Reason: "is required"}
	}
	if !timePattern.MatchString(form.StartTime) {
		return &FieldError{Field: "startTime", Reason: "must match HH:mm"}
	}
	if !timePattern.MatchString(form.EndTime) {
		return &FieldError{Field: "endTime", Reason: "must match HH:mm"}
	}
	if minutesOfDay(form.StartTime) >= minutesOfDay(form.EndTime) {
		return &FieldError{Field: "startTime", Reason: "must be before endTime"}
	}
	if form.DurationMinutes <= 0 {
		return &FieldError{Field: "duration", Reason: "must be positive"}
	}
	if form.Capacity <= 0 {
		return &FieldError{Field: "capacity", Reason: "must be positive"}
	}
	return nil
}

// minutesOfDay переводит прошедшую валидацию строку HH:mm в минуты от полуночи
func minutesOfDay(value string) int {
	parts := strings.SplitN(value, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}
