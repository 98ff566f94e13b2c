package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/chapternet/CN-PodcastService/internal/admin/client"
	"github.com/chapternet/CN-PodcastService/internal/admin/console"
	"github.com/chapternet/CN-PodcastService/internal/domain"
	"github.com/chapternet/CN-PodcastService/pkg/logger"
)

const usage = `adminctl - консоль администратора подкаст-сервиса

Usage:
  adminctl [global flags] <command> [command flags]

Commands:
  podcasts list       список подкастов
  podcasts save       создать (-id 0) или обновить подкаст
  podcasts toggle     переключить активность подкаста
  podcasts delete     удалить подкаст
  slots generate      сгенерировать слоты по диапазону дат
  slots list          список слотов
  slots delete        удалить один слот
  slots bulk-delete   удалить несколько слотов
  bookings list       список бронирований подкаста
  bookings status     применить действие к бронированию

Global flags:
  -base-url   адрес API (или env ADMINCTL_BASE_URL)
  -token      JWT токен администратора (или env ADMINCTL_TOKEN)
  -timeout    таймаут запросов
  -yes        не запрашивать подтверждения
`

func main() {
	baseURL := flag.String("base-url", envOr("ADMINCTL_BASE_URL", "http://localhost:8080"), "адрес API")
	token := flag.String("token", os.Getenv("ADMINCTL_TOKEN"), "JWT токен администратора")
	timeout := flag.Duration("timeout", 15*time.Second, "таймаут запросов")
	yes := flag.Bool("yes", false, "не запрашивать подтверждения")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New("stdout", "warn")
	if err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	app := &app{
		api:     client.NewClient(*baseURL, *timeout, client.StaticToken(*token), log),
		notify:  stdoutNotifier{},
		confirm: &stdinConfirmer{auto: *yes},
		log:     log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := app.run(ctx, args[0], args[1], args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	api     *client.Client
	notify  console.Notifier
	confirm console.Confirmer
	log     console.Logger
}

func (a *app) run(ctx context.Context, group, command string, args []string) error {
	switch group + " " + command {
	case "podcasts list":
		return a.podcastsList(ctx, args)
	case "podcasts save":
		return a.podcastsSave(ctx, args)
	case "podcasts toggle":
		return a.podcastsToggle(ctx, args)
	case "podcasts delete":
		return a.podcastsDelete(ctx, args)
	case "slots generate":
		return a.slotsGenerate(ctx, args)
	case "slots list":
		return a.slotsList(ctx, args)
	case "slots delete":
		return a.slotsDelete(ctx, args)
	case "slots bulk-delete":
		return a.slotsBulkDelete(ctx, args)
	case "bookings list":
		return a.bookingsList(ctx, args)
	case "bookings status":
		return a.bookingsStatus(ctx, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", group+" "+command)
	}
}

func (a *app) podcastsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("podcasts list", flag.ExitOnError)
	page := fs.Int("page", 1, "номер страницы")
	search := fs.String("search", "", "поиск по имени подкастера")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := console.NewPodcastsView(a.api, a.notify, a.confirm, a.log)
	view.Search = *search
	if err := view.Load(ctx, *page); err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tPODCASTER\tVENUE\tDATES\tSTATUS\tACTIVE")
	for _, p := range view.Podcasts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s..%s\t%s\t%t\n",
			p.ID, p.PodcasterName, p.Venue, p.StartDate, p.EndDate, p.Status, p.IsActive)
	}
	w.Flush()
	fmt.Printf("page %d/%d, total %d\n", view.Page, view.TotalPages, view.Total)
	return nil
}

func (a *app) podcastsSave(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("podcasts save", flag.ExitOnError)
	id := fs.Int64("id", 0, "ID подкаста (0 для создания)")
	name := fs.String("name", "", "имя подкастера")
	about := fs.String("about", "", "описание подкастера")
	venue := fs.String("venue", "", "площадка")
	start := fs.String("start", "", "дата начала (2006-01-02)")
	end := fs.String("end", "", "дата окончания (2006-01-02)")
	active := fs.Bool("active", true, "активность")
	imagePath := fs.String("image", "", "путь к изображению подкастера")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := &client.SavePodcastForm{
		PodcasterName:  *name,
		AboutPodcaster: *about,
		Venue:          *venue,
		StartDate:      *start,
		EndDate:        *end,
		IsActive:       *active,
	}

	var image *os.File
	imageName := ""
	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		image = f
		imageName = f.Name()
	}

	view := console.NewPodcastsView(a.api, a.notify, a.confirm, a.log)
	var saved *client.Podcast
	var err error
	if image != nil {
		saved, err = view.Save(ctx, *id, form, image, imageName)
	} else {
		saved, err = view.Save(ctx, *id, form, nil, "")
	}
	if err != nil {
		return err
	}
	fmt.Printf("podcast %d: %s (%s)\n", saved.ID, saved.PodcasterName, saved.Status)
	return nil
}

func (a *app) podcastsToggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("podcasts toggle", flag.ExitOnError)
	id := fs.Int64("id", 0, "ID подкаста")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("flag -id is required")
	}

	view := console.NewPodcastsView(a.api, a.notify, a.confirm, a.log)
	if err := view.Load(ctx, 1); err != nil {
		return err
	}
	return view.ToggleActive(ctx, *id)
}

func (a *app) podcastsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("podcasts delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "ID подкаста")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("flag -id is required")
	}

	view := console.NewPodcastsView(a.api, a.notify, a.confirm, a.log)
	return view.Delete(ctx, *id)
}

func (a *app) slotsGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots generate", flag.ExitOnError)
	podcastID := fs.Int64("podcast", 0, "ID подкаста")
	startDate := fs.String("from", "", "первая дата (2006-01-02)")
	endDate := fs.String("to", "", "последняя дата, включительно")
	startTime := fs.String("start", "", "время начала (HH:mm)")
	endTime := fs.String("end", "", "время окончания (HH:mm)")
	duration := fs.Int("duration", domain.DefaultSlotDurationMinutes, "длительность слота, минут")
	capacity := fs.Int("capacity", domain.DefaultSlotCapacity, "вместимость слота")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen := console.NewSlotGenerator(a.api, a.notify, a.log)
	return gen.Generate(ctx, &console.SlotGeneratorForm{
		PodcastID:       *podcastID,
		StartDate:       *startDate,
		EndDate:         *endDate,
		StartTime:       *startTime,
		EndTime:         *endTime,
		DurationMinutes: *duration,
		Capacity:        *capacity,
	})
}

func (a *app) slotsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots list", flag.ExitOnError)
	podcastID := fs.Int64("podcast", 0, "фильтр по подкасту")
	date := fs.String("date", "", "фильтр по дате (2006-01-02)")
	status := fs.String("status", "", "фильтр по статусу")
	page := fs.Int("page", 1, "номер страницы")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := console.NewSlotRegistryView(a.api, a.notify, a.confirm, a.log, *podcastID)
	view.DateFilter = *date
	view.StatusFilter = *status
	if err := view.Load(ctx, *page); err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tTIME\tBOOKED\tSTATUS")
	for _, s := range view.Slots {
		fmt.Fprintf(w, "%d\t%s\t%s-%s\t%d/%d\t%s\n",
			s.ID, s.Date, s.StartTime, s.EndTime, s.BookedCount, s.Capacity, s.Status)
	}
	w.Flush()
	fmt.Printf("page %d/%d, total %d\n", view.Page, view.TotalPages, view.Total)
	return nil
}

func (a *app) slotsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "ID слота")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("flag -id is required")
	}

	view := console.NewSlotRegistryView(a.api, a.notify, a.confirm, a.log, 0)
	return view.DeleteOne(ctx, *id)
}

func (a *app) slotsBulkDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots bulk-delete", flag.ExitOnError)
	ids := fs.String("ids", "", "ID слотов через запятую")
	if err := fs.Parse(args); err != nil {
		return err
	}

	slotIDs, err := parseIDs(*ids)
	if err != nil {
		return err
	}

	view := console.NewSlotRegistryView(a.api, a.notify, a.confirm, a.log, 0)
	for _, id := range slotIDs {
		view.ToggleSelect(id)
	}
	return view.DeleteMany(ctx)
}

func (a *app) bookingsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings list", flag.ExitOnError)
	podcastID := fs.Int64("podcast", 0, "ID подкаста")
	search := fs.String("search", "", "поиск по имени или email участника")
	page := fs.Int("page", 1, "номер страницы")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *podcastID <= 0 {
		return fmt.Errorf("flag -podcast is required")
	}

	view := console.NewBookingStatusView(a.api, a.notify, console.RealClock{}, a.log, *podcastID)
	defer view.Close()
	view.Search = *search
	if err := view.Load(ctx, *page); err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tMEMBER\tEMAIL\tSLOT\tSTATUS\tCANCELLABLE")
	for _, b := range view.Bookings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\t%t\n",
			b.ID, b.MemberName, b.MemberEmail, b.Slot.Date, b.Slot.StartTime, b.Status, view.CanCancel(b))
	}
	w.Flush()
	fmt.Printf("page %d/%d, total %d\n", view.Page, view.TotalPages, view.Total)
	return nil
}

func (a *app) bookingsStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings status", flag.ExitOnError)
	podcastID := fs.Int64("podcast", 0, "ID подкаста")
	id := fs.Int64("id", 0, "ID бронирования")
	action := fs.String("action", "", "действие: accept, reject, cancel, complete, pending")
	notes := fs.String("notes", "", "заметка администратора")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || *action == "" {
		return fmt.Errorf("flags -id and -action are required")
	}

	view := console.NewBookingStatusView(a.api, a.notify, console.RealClock{}, a.log, *podcastID)
	defer view.Close()

	var adminNotes *string
	if *notes != "" {
		adminNotes = notes
	}
	return view.UpdateStatus(ctx, *id, *action, adminNotes)
}

// stdoutNotifier печатает уведомления консоли в терминал
type stdoutNotifier struct{}

func (stdoutNotifier) Success(message string) { fmt.Println("OK: " + message) }
func (stdoutNotifier) Error(message string)   { fmt.Fprintln(os.Stderr, "ERROR: "+message) }

// stdinConfirmer запрашивает подтверждение через терминал
type stdinConfirmer struct {
	auto bool
}

func (c *stdinConfirmer) Confirm(message string) bool {
	if c.auto {
		return true
	}
	fmt.Printf("%s [y/N]: ", message)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid slot id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
