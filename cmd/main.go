package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	bookingStatsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/booking_stats"
	bulkDeleteSlotsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/bulk_delete_slots"
	cancelBookingHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/create_booking"
	createPodcastHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/create_podcast"
	deletePodcastHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/delete_podcast"
	deleteSlotHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/delete_slot"
	generateSlotsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/list_bookings"
	listPodcastsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/list_podcasts"
	listSlotsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/list_slots"
	upcomingPodcastsHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/upcoming_podcasts"
	updateBookingStatusHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/update_booking_status"
	updatePodcastHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/update_podcast"
	updateSlotHandler "github.com/chapternet/CN-PodcastService/internal/api/handlers/update_slot"
	"github.com/chapternet/CN-PodcastService/internal/api/middleware"
	"github.com/chapternet/CN-PodcastService/internal/config"
	"github.com/chapternet/CN-PodcastService/internal/infra/cache"
	"github.com/chapternet/CN-PodcastService/internal/infra/files"
	"github.com/chapternet/CN-PodcastService/internal/infra/queue"
	bookingRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/booking"
	podcastRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/podcast"
	slotRepo "github.com/chapternet/CN-PodcastService/internal/infra/storage/slot"
	memberServiceClient "github.com/chapternet/CN-PodcastService/internal/integrations/memberservice"
	bookingsService "github.com/chapternet/CN-PodcastService/internal/service/bookings"
	podcastsService "github.com/chapternet/CN-PodcastService/internal/service/podcasts"
	slotsService "github.com/chapternet/CN-PodcastService/internal/service/slots"
	createBookingUC "github.com/chapternet/CN-PodcastService/internal/usecase/create_booking"
	generateSlotsUC "github.com/chapternet/CN-PodcastService/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/chapternet/CN-PodcastService/internal/usecase/get_available_slots"
	"github.com/chapternet/CN-PodcastService/migrations"
	"github.com/chapternet/CN-PodcastService/pkg/dbmetrics"
	"github.com/chapternet/CN-PodcastService/pkg/logger"
	"github.com/chapternet/CN-PodcastService/pkg/metrics"
	"github.com/chapternet/CN-PodcastService/pkg/simpletxmanager"
	"github.com/chapternet/CN-PodcastService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CN-PodcastService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := migrations.Up(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrations.Version(context.Background(), db); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Клиент MemberService
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (MemberService=%s timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout)

	// Хранилище изображений
	imageStore, err := files.NewImageStore(cfg.Uploads.Dir, cfg.Uploads.MaxSizeMB, cfg.Uploads.ThumbnailWidth)
	if err != nil {
		log.Fatal("Failed to initialize image store: %v", err)
	}
	log.Info("Image store initialized (dir=%s, max=%dMB)", cfg.Uploads.Dir, cfg.Uploads.MaxSizeMB)

	// Кэш списков (Redis, опционально)
	listCache := cache.Disabled()
	if cfg.Redis.Enabled {
		listCache = cache.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			log,
		)
	}
	defer listCache.Close()

	// Публикация событий бронирований (RabbitMQ, опционально)
	publisher := queue.NopPublisher()
	if cfg.AMQP.Enabled {
		publisher = queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		log.Info("AMQP publisher initialized (exchange=%s)", cfg.AMQP.Exchange)
	}
	defer publisher.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		podcastRepository *podcastRepo.Repository
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		podcastRepository = podcastRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		podcastRepository = podcastRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	podcastSvc := podcastsService.NewService(podcastRepository, imageStore, listCache, log)
	slotSvc := slotsService.NewService(slotRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, publisher, txMgr, cfg.Bookings.CancellationNoticeHours, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(podcastRepository, slotRepository, txMgr, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(podcastRepository, slotRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		memberClient,
		publisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	upcomingPodcasts := upcomingPodcastsHandler.NewHandler(podcastSvc, log)
	listPodcasts := listPodcastsHandler.NewHandler(podcastSvc, log)
	createPodcast := createPodcastHandler.NewHandler(podcastSvc, log)
	updatePodcast := updatePodcastHandler.NewHandler(podcastSvc, log)
	deletePodcast := deletePodcastHandler.NewHandler(podcastSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	bulkDeleteSlots := bulkDeleteSlotsHandler.NewHandler(slotSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	bookingStats := bookingStatsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	r.Use(rateLimiter.Handler)

	// Статика: изображения подкастеров и миниатюры
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Витрина предстоящих подкастов и доступные для записи слоты
	api.HandleFunc("/podcasts/upcoming", upcomingPodcasts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Подкасты ---
	protected.HandleFunc("/podcasts", listPodcasts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/podcasts", createPodcast.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/podcasts/{podcastId}", updatePodcast.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/podcasts/{podcastId}", deletePodcast.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	protected.HandleFunc("/podcasts/{podcastId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/bulk-delete", bulkDeleteSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/podcasts/{podcastId}/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings/stats", bookingStats.Handle).Methods(http.MethodGet)

	// CORS для админ-консоли
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
