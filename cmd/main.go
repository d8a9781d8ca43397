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
	"github.com/robfig/cron/v3"

	cancelReservationHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/get_available_slots"
	getDayScheduleHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/get_day_schedule"
	getReservationHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/get_reservation"
	getServicesHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/get_services"
	getUserReservationsHandler "github.com/hyukraeyo/reservation-app-sub000/internal/api/handlers/get_user_reservations"
	"github.com/hyukraeyo/reservation-app-sub000/internal/api/middleware"
	"github.com/hyukraeyo/reservation-app-sub000/internal/clock"
	"github.com/hyukraeyo/reservation-app-sub000/internal/config"
	catalogRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/catalog"
	reservationRepo "github.com/hyukraeyo/reservation-app-sub000/internal/infra/storage/reservation"
	notifyServiceClient "github.com/hyukraeyo/reservation-app-sub000/internal/integrations/notifyservice"
	catalogService "github.com/hyukraeyo/reservation-app-sub000/internal/service/catalog"
	reservationsService "github.com/hyukraeyo/reservation-app-sub000/internal/service/reservations"
	cancelReservationUC "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/cancel_reservation"
	createReservationUC "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/create_reservation"
	expireReservationsUC "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/expire_reservations"
	getAvailableSlotsUC "github.com/hyukraeyo/reservation-app-sub000/internal/usecase/get_available_slots"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/dbmetrics"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/logger"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/metrics"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/simpletxmanager"
	"github.com/hyukraeyo/reservation-app-sub000/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon reservation service...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize the notification client
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Initialize repositories (with or without metrics)
	var (
		reservationRepository *reservationRepo.Repository
		catalogRepository     *catalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	systemClock := clock.NewSystem()
	staffIDs := cfg.Staff.ManagerIDs
	log.Info("Staff configured: %d manager(s)", len(staffIDs))

	// Initialize services
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		notifyClient,
		staffIDs,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Initialize use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		notifyClient,
		txMgr,
		systemClock,
		staffIDs,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		systemClock,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		notifyClient,
		systemClock,
		staffIDs,
		log,
	)
	expireReservationsUseCase := expireReservationsUC.NewUseCase(
		reservationRepository,
		systemClock,
		log,
	)

	// Initialize handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(reservationsSvc, log)

	// Set up the router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (no authentication)
	// ============================================================

	// Salon service catalog
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Availability grid for a date and service
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Reservations ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)

	// Reservation history of one user
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Staff day view
	protected.HandleFunc("/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Background sweep: pending reservations whose start has passed get
	// cancelled so their blocks free up
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Sweep.Schedule, func() {
		expired, err := expireReservationsUseCase.Execute(context.Background())
		if err != nil {
			log.Error("Expiry sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Info("Expiry sweep cancelled %d stale reservation(s)", expired)
		}
	}); err != nil {
		log.Fatal("Failed to schedule expiry sweep (%q): %v", cfg.Sweep.Schedule, err)
	}
	sweeper.Start()
	log.Info("Expiry sweep scheduled: %s", cfg.Sweep.Schedule)

	// Create the HTTP server
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	sweepCtx := sweeper.Stop()
	<-sweepCtx.Done()
	log.Info("Expiry sweep stopped")

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
