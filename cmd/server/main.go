package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cateringapp "github.com/catering/backend/internal/application/catering"
	customerapp "github.com/catering/backend/internal/application/customer"
	inventoryapp "github.com/catering/backend/internal/application/inventory"
	reportapp "github.com/catering/backend/internal/application/report"
	staffapp "github.com/catering/backend/internal/application/staff"
	"github.com/catering/backend/internal/infrastructure/cache"
	"github.com/catering/backend/internal/infrastructure/config"
	"github.com/catering/backend/internal/infrastructure/event"
	"github.com/catering/backend/internal/infrastructure/logger"
	"github.com/catering/backend/internal/infrastructure/migration"
	"github.com/catering/backend/internal/infrastructure/persistence"
	"github.com/catering/backend/internal/infrastructure/telemetry"
	"github.com/catering/backend/internal/interfaces/http/handler"
	"github.com/catering/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	migrate := flag.Bool("migrate", false, "Apply embedded schema migrations before serving")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log, *migrate); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger, migrate bool) error {
	log.Info("starting catering backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, version, log)
	if err != nil {
		return err
	}
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() {
		dbTracing := telemetry.DBTracingConfig{DBName: cfg.Database.DBName, LogFullSQL: cfg.Telemetry.LogFullSQL}
		if err := telemetry.RegisterGormTracing(db.DB, tracerProvider.Provider(), dbTracing, log); err != nil {
			return err
		}
	}
	log.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.DBName))

	if migrate {
		if err := applyMigrations(db, log); err != nil {
			return err
		}
	}

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryItemRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	dashboardCache := cache.NewDashboardCache(cfg.Redis, log)
	if closer, ok := dashboardCache.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	eventBus.Subscribe(inventoryapp.NewStockBelowThresholdHandler(log).
		WithNotifier(inventoryapp.NewLoggingStockAlertNotifier(log)))
	eventBus.Subscribe(reportapp.NewDashboardInvalidationHandler(dashboardCache, log))

	orderService := cateringapp.NewOrderService(orderRepo, txScope, log)
	taskService := cateringapp.NewTaskService(taskRepo, txScope, log)
	availabilityService := cateringapp.NewAvailabilityService(orderRepo, employeeRepo)
	employeeService := staffapp.NewEmployeeService(employeeRepo, log)
	inventoryService := inventoryapp.NewInventoryService(inventoryRepo, log)
	customerService := customerapp.NewCustomerService(customerRepo, log)
	dashboardService := reportapp.NewDashboardService(orderRepo, taskRepo, employeeRepo, inventoryRepo, dashboardCache, log)
	dashboardService.SetTTL(cfg.Redis.DashboardTTL)
	orderService.SetCurrency(cfg.App.MoneyCurrency())
	inventoryService.SetCurrency(cfg.App.MoneyCurrency())

	if cfg.Event.BusEnabled {
		orderService.SetEventPublisher(eventBus)
		taskService.SetEventPublisher(eventBus)
		inventoryService.SetEventPublisher(eventBus)
		employeeService.SetEventPublisher(eventBus)
		customerService.SetEventPublisher(eventBus)
		if err := eventBus.Start(context.Background()); err != nil {
			return err
		}
		defer func() { _ = eventBus.Stop(context.Background()) }()
	} else {
		log.Warn("event bus disabled; dashboard refreshes on TTL only")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	var engineOpts []router.EngineOption
	if tracerProvider.IsEnabled() {
		engineOpts = append(engineOpts, router.WithTracing(cfg.Telemetry.ServiceName, tracerProvider.Provider()))
	}
	engine, err := router.NewEngine(cfg.HTTP, log, engineOpts...)
	if err != nil {
		return fmt.Errorf("build http engine: %w", err)
	}
	router.NewRouter(engine).
		RegisterRoot(handler.NewHealthHandler(db, version)).
		Register(
			handler.NewOrderHandler(orderService),
			handler.NewCustomerHandler(customerService, orderService),
			handler.NewEmployeeHandler(employeeService, availabilityService, taskService),
			handler.NewInventoryHandler(inventoryService),
			handler.NewTaskHandler(taskService),
			handler.NewReportHandler(dashboardService),
		).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server exited gracefully")
	return nil
}

func applyMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	m, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		return err
	}
	// closing the migrator would close the shared pool
	return m.Up()
}
