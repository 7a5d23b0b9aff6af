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
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	blockDayHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/block_day"
	cancelBookingHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/get_booking"
	getDateBookingsHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/get_date_bookings"
	rejectBookingHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/reject_booking"
	rescheduleBookingHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/reschedule_booking"
	toggleSlotHandler "github.com/velvetnails/VNS-BookingService/internal/api/handlers/toggle_slot"
	"github.com/velvetnails/VNS-BookingService/internal/api/middleware"
	"github.com/velvetnails/VNS-BookingService/internal/config"
	"github.com/velvetnails/VNS-BookingService/internal/domain"
	blocksRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/blocks"
	bookingRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/booking"
	"github.com/velvetnails/VNS-BookingService/internal/infra/ratelimit"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/imagestore"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/smsgateway"
	"github.com/velvetnails/VNS-BookingService/internal/reminder"
	blocksService "github.com/velvetnails/VNS-BookingService/internal/service/blocks"
	bookingsService "github.com/velvetnails/VNS-BookingService/internal/service/bookings"
	cancelBookingUC "github.com/velvetnails/VNS-BookingService/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/velvetnails/VNS-BookingService/internal/usecase/confirm_booking"
	createBookingUC "github.com/velvetnails/VNS-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/velvetnails/VNS-BookingService/internal/usecase/get_availability"
	rejectBookingUC "github.com/velvetnails/VNS-BookingService/internal/usecase/reject_booking"
	rescheduleBookingUC "github.com/velvetnails/VNS-BookingService/internal/usecase/reschedule_booking"
	salonclock "github.com/velvetnails/VNS-BookingService/pkg/clock"
	"github.com/velvetnails/VNS-BookingService/pkg/dbmetrics"
	"github.com/velvetnails/VNS-BookingService/pkg/logger"
	"github.com/velvetnails/VNS-BookingService/pkg/metrics"
	"github.com/velvetnails/VNS-BookingService/pkg/simpletxmanager"
	"github.com/velvetnails/VNS-BookingService/pkg/txmanager"
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

	log.Info("Starting VNS-BookingService...")

	// Часовой пояс и сетка слотов салона
	loc, err := cfg.Salon.Location()
	if err != nil {
		log.Fatal("Failed to load salon timezone: %v", err)
	}

	open, _ := cfg.Salon.Open()
	lastStart, _ := cfg.Salon.LastStart()
	publicLastStart, _ := cfg.Salon.PublicLastStart()

	grid, err := domain.NewTimeGrid(open, lastStart, publicLastStart)
	if err != nil {
		log.Fatal("Failed to build time grid: %v", err)
	}
	log.Info("Time grid: %s..%s, %d slots (%d public)",
		open, lastStart, grid.SlotCount(), len(grid.PublicDisplay()))

	salonClock := salonclock.New(loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Интеграционные клиенты
	smsClient := smsgateway.NewClient(
		cfg.SMS.URL,
		cfg.SMS.APIKey,
		cfg.SMS.FromNumber,
		time.Duration(cfg.SMS.Timeout)*time.Second,
		log,
	)
	imageClient := imagestore.NewClient(
		cfg.Images.URL,
		cfg.Images.APIKey,
		time.Duration(cfg.Images.Timeout)*time.Second,
		log,
	)

	// Rate limiter на Redis (если включен)
	var limiter createBookingUC.RateLimiter
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		limiter = ratelimit.NewLimiter(
			rdb,
			cfg.RateLimit.MaxPerWindow,
			time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
			salonClock,
			log,
		)
		log.Info("Rate limiter enabled: %d attempts per %d minutes",
			cfg.RateLimit.MaxPerWindow, cfg.RateLimit.WindowMinutes)
	}

	// Репозитории и транзакционный менеджер (с метриками или без)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		bookingRepository *bookingRepo.Repository
		blockRepository   *blocksRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockRepository = blocksRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		blockRepository = blocksRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Сервисы панели оператора
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	blockSvc := blocksService.NewService(blockRepository, txMgr, grid, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		blockRepository,
		grid,
		cfg.Salon.WindowDays,
		cfg.Salon.MinNoticeMinutes,
		salonClock,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockRepository,
		txMgr,
		limiter,
		smsClient,
		grid,
		cfg.Salon.WindowDays,
		cfg.Salon.MinNoticeMinutes,
		salonClock,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(bookingRepository, txMgr, smsClient, log)
	rejectBookingUseCase := rejectBookingUC.NewUseCase(
		bookingRepository, blockRepository, txMgr, smsClient, imageClient, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository, blockRepository, txMgr, smsClient, imageClient, log)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		blockRepository,
		txMgr,
		smsClient,
		grid,
		cfg.Salon.WindowDays,
		cfg.Salon.MinNoticeMinutes,
		salonClock,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, grid, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getDateBookings := getDateBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(rejectBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	blockDay := blockDayHandler.NewHandler(blockSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(blockSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты формы записи
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Маршруты панели оператора (требуют X-Admin-Token)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Admin.Token))

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/dates/{date}/bookings", getDateBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dates/{date}/block", blockDay.HandleBlock).Methods(http.MethodPut)
	protected.HandleFunc("/dates/{date}/block", blockDay.HandleUnblock).Methods(http.MethodDelete)
	protected.HandleFunc("/dates/{date}/slots/toggle", toggleSlot.Handle).Methods(http.MethodPost)

	// Рассылка напоминаний по расписанию (если включена)
	var reminderCron *cron.Cron
	if cfg.Reminders.Enabled {
		sweeper := reminder.NewSweeper(bookingRepository, smsClient, salonClock, log)

		reminderCron = cron.New(cron.WithLocation(loc))
		if _, err := reminderCron.AddFunc(cfg.Reminders.Schedule, func() {
			sweeper.Run(context.Background())
		}); err != nil {
			log.Fatal("Failed to schedule reminder sweep: %v", err)
		}
		reminderCron.Start()
		log.Info("Reminder sweep scheduled: %q (%s)", cfg.Reminders.Schedule, cfg.Salon.Timezone)
	}

	// HTTP-сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if reminderCron != nil {
		<-reminderCron.Stop().Done()
		log.Info("Reminder sweep stopped")
	}

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
