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

	cancelBookingHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/get_available_slots"
	getBusyDatesHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/get_busy_dates"
	getProjectBookingsHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/get_project_bookings"
	importContractsApplyHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/import_contracts_apply"
	importContractsDiffHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/import_contracts_diff"
	rebookBookingHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/rebook_booking"
	resolveContractHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/resolve_contract"
	setProjectSlotsHandler "github.com/dks-soft/DKS-HandoverService/internal/api/handlers/set_project_slots"
	"github.com/dks-soft/DKS-HandoverService/internal/api/middleware"
	"github.com/dks-soft/DKS-HandoverService/internal/config"
	bookingRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
	contractRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/contract"
	projectRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
	bookingsService "github.com/dks-soft/DKS-HandoverService/internal/service/bookings"
	projectsService "github.com/dks-soft/DKS-HandoverService/internal/service/projects"
	createBookingUC "github.com/dks-soft/DKS-HandoverService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/dks-soft/DKS-HandoverService/internal/usecase/get_available_slots"
	getBusyDatesUC "github.com/dks-soft/DKS-HandoverService/internal/usecase/get_busy_dates"
	rebookBookingUC "github.com/dks-soft/DKS-HandoverService/internal/usecase/rebook_booking"
	reconcileContractsUC "github.com/dks-soft/DKS-HandoverService/internal/usecase/reconcile_contracts"
	"github.com/dks-soft/DKS-HandoverService/pkg/dbmetrics"
	"github.com/dks-soft/DKS-HandoverService/pkg/logger"
	"github.com/dks-soft/DKS-HandoverService/pkg/metrics"
	"github.com/dks-soft/DKS-HandoverService/pkg/simpletxmanager"
	"github.com/dks-soft/DKS-HandoverService/pkg/txmanager"
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

	log.Info("Starting DKS-HandoverService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		contractRepository *contractRepo.Repository
		projectRepository  *projectRepo.Repository
	)

	// Интерфейс транзакционного менеджера, общий для usecases
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		contractRepository = contractRepo.NewRepository(wrappedDB)
		projectRepository = projectRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		contractRepository = contractRepo.NewRepository(db)
		projectRepository = projectRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		contractRepository,
		log,
	)
	projectSvc := projectsService.NewService(
		projectRepository,
		contractRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		contractRepository,
		projectRepository,
		txMgr,
		log,
	)
	rebookBookingUseCase := rebookBookingUC.NewUseCase(
		bookingRepository,
		contractRepository,
		projectRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		projectRepository,
		log,
	)
	getBusyDatesUseCase := getBusyDatesUC.NewUseCase(
		bookingRepository,
		projectRepository,
		log,
	)
	reconcileContractsUseCase := reconcileContractsUC.NewUseCase(
		contractRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	resolveContract := resolveContractHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rebookBooking := rebookBookingHandler.NewHandler(rebookBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBusyDates := getBusyDatesHandler.NewHandler(getBusyDatesUseCase, log)
	getProjectBookings := getProjectBookingsHandler.NewHandler(bookingSvc, log)
	setProjectSlots := setProjectSlotsHandler.NewHandler(projectSvc, log)
	importContractsDiff := importContractsDiffHandler.NewHandler(reconcileContractsUseCase, log)
	importContractsApply := importContractsApplyHandler.NewHandler(reconcileContractsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятость слотов на дату
	api.HandleFunc("/projects/{project}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Полностью занятые даты для календаря
	api.HandleFunc("/projects/{project}/busy-dates",
		getBusyDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Договоры ---
	// Поиск договора по номеру
	protected.HandleFunc("/contracts/resolve", resolveContract.Handle).Methods(http.MethodPost)

	// Сверка импортируемого реестра договоров
	protected.HandleFunc("/contracts/import/diff", importContractsDiff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/import/apply", importContractsApply.Handle).Methods(http.MethodPost)

	// --- Записи на выдачу ключей ---
	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос записи на другие дату и время
	protected.HandleFunc("/bookings/{bookingId}/rebook", rebookBooking.Handle).Methods(http.MethodPost)

	// --- Управление проектом (для сотрудников) ---
	// Список записей проекта за период
	protected.HandleFunc("/projects/{project}/bookings", getProjectBookings.Handle).Methods(http.MethodGet)

	// Настройки проекта: лимит слотов, адрес
	protected.HandleFunc("/projects/{project}/slots", setProjectSlots.Handle).Methods(http.MethodPut)

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
