package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/parking-service/internal/api/http"
	"github.com/spec-kit/parking-service/internal/api/http/handlers"
	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/persistence"
	"github.com/spec-kit/parking-service/internal/pricing"
	"github.com/spec-kit/parking-service/internal/repository"
	"github.com/spec-kit/parking-service/internal/service"
	"github.com/spec-kit/parking-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	events.BridgeToBroadcaster(dispatcher, redis, logger)

	userRepo := repository.NewUserRepository()

	var peakWindows []pricing.PeakWindow
	for _, w := range cfg.Pricing.ParsePeakWindows() {
		peakWindows = append(peakWindows, pricing.PeakWindow{StartHour: w[0], EndHour: w[1]})
	}
	engine := pricing.NewEngine(cfg.Pricing.BaseRatePerHour, cfg.Pricing.PeakMultiplier, peakWindows)

	allocService := service.NewAllocationService(cfg.Lot.Capacity, service.AllocationDependencies{
		UserRepo:   userRepo,
		Pricing:    engine,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	reportService := service.NewReportService(allocService, nil)

	authService := service.NewAuthService(cfg.Auth, userRepo, logger)
	if err := authService.EnsureOperator(ctx, cfg.Auth); err != nil {
		logger.Fatal("failed to bootstrap operator", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Users:          handlers.NewUsersHandler(authService),
		Parking:        handlers.NewParkingHandler(allocService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	logger.Info("starting parking service",
		zap.String("addr", cfg.App.Addr()),
		zap.Int("capacity", cfg.Lot.Capacity))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
