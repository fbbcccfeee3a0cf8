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
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	availabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/availability"
	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	catalogHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/catalog"
	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	getAllBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_all_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getBookedIntervalsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booked_intervals"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getTimezoneHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_timezone"
	getUserBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_bookings"
	updateBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_booking"
	updateTimezoneHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_timezone"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache"
	"github.com/m04kA/SMC-ReservationService/internal/infra/export"
	availabilityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/schema"
	settingsRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/identity"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	availabilityService "github.com/m04kA/SMC-ReservationService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/clock"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level,
		logger.WithFormat(cfg.Logs.Format),
		logger.WithService(cfg.Metrics.ServiceName),
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	d, err := dialect.Parse(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Invalid database driver: %v", err)
	}

	db, err := sql.Open(d.DriverName(), cfg.Database.DSN())
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
	log.Info("Successfully connected to database (driver=%s)", d)

	if cfg.Database.Migrate {
		if err := schema.Apply(context.Background(), db, d); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
		log.Info("Database schema applied")
	}

	// Обёртка пишет метрики запросов, без метрик она прозрачна
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Менеджер транзакций
	txOpts := []txmanager.Option{
		txmanager.WithRetry(cfg.Booking.TxMaxRetries, dialect.IsRetryable),
		txmanager.WithRetryObserver(metricsCollector),
	}
	if d == dialect.SQLite {
		txOpts = append(txOpts, txmanager.WithoutIsolationLevels())
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)

	// Redis (кэш настроек и распределённый rate limit)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = cache.NewRedisClient(cfg.Redis)
		if err := cache.Ping(context.Background(), redisClient); err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis (address=%s)", cfg.Redis.Address)
	}

	// Проверка токенов
	var authenticator middleware.Authenticator
	switch cfg.Auth.Mode {
	case config.AuthModeRemote:
		authenticator = identity.NewClient(cfg.Identity.URL, cfg.Identity.TimeoutDuration(), log)
		log.Info("Auth mode: remote (identity=%s timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)
	default:
		authenticator = identity.NewJWTVerifier(cfg.Auth.JWTSecret)
		log.Info("Auth mode: jwt")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, d)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB, d)
	catalogRepository := catalogRepo.NewRepository(wrappedDB, d)
	settingsRepository := settingsRepo.NewRepository(wrappedDB, d)

	// Инициализируем сервисы
	var settingsCache settingsService.SettingsCache
	if redisClient != nil {
		settingsCache = cache.NewSettingsCache(redisClient, cfg.Redis.SettingsTTLDuration())
	}
	settingsSvc := settingsService.NewService(settingsRepository, settingsCache, cfg.Booking.DefaultTimezone, log)
	resolver := clock.NewResolver(settingsSvc)

	bookingSvc := bookingsService.NewService(bookingRepository, resolver, export.NewXLSXExporter(), log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)

	slotAllocator := allocator.NewAllocator(
		catalogRepository,
		availabilityRepository,
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(slotAllocator, resolver, log)
	updateBookingUseCase := updateBookingUC.NewUseCase(bookingRepository, slotAllocator, resolver, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		availabilityRepository,
		bookingRepository,
		resolver,
		cfg.Booking.SlotStepMinutes,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBookedIntervals := getBookedIntervalsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc, log)
	catalogH := catalogHandler.NewHandler(catalogSvc, log)
	getTimezone := getTimezoneHandler.NewHandler(settingsSvc, log)
	updateTimezone := updateTimezoneHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			log.Error("GET /health - Database unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(authenticator, log))

	if cfg.RateLimit.Enabled {
		var limiter middleware.Limiter
		if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
			limiter = cache.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window())
		} else {
			limiter = cache.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window(), cfg.RateLimit.Burst)
		}
		api.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled (backend=%s, %d requests per %ds)",
			cfg.RateLimit.Backend, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}

	// --- Каталог ---
	api.HandleFunc("/services", catalogH.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/categories", catalogH.ListCategories).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/availability", availabilityH.List).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Настройки ---
	api.HandleFunc("/settings/timezone", getTimezone.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/mine", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/all", getBookedIntervals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", cancelBooking.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	admin.HandleFunc("/services", catalogH.ListServices).Methods(http.MethodGet)
	admin.HandleFunc("/services", catalogH.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", catalogH.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", catalogH.DeleteService).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", catalogH.ListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", catalogH.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{categoryId:[0-9]+}", catalogH.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{categoryId:[0-9]+}", catalogH.DeleteCategory).Methods(http.MethodDelete)

	admin.HandleFunc("/availability", availabilityH.AdminList).Methods(http.MethodGet)
	admin.HandleFunc("/availability", availabilityH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/availability/{windowId:[0-9]+}", availabilityH.Get).Methods(http.MethodGet)
	admin.HandleFunc("/availability/{windowId:[0-9]+}", availabilityH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/availability/{windowId:[0-9]+}", availabilityH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/bookings", getAllBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createBooking.HandleAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/export", getAllBookings.Export).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", updateBooking.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", cancelBooking.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/settings/timezone", updateTimezone.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	close(stopMetricsCh)

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
