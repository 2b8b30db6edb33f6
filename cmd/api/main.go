package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/depomarket/retail-service/internal/api/http"
	"github.com/depomarket/retail-service/internal/api/http/handlers"
	"github.com/depomarket/retail-service/internal/auth"
	"github.com/depomarket/retail-service/internal/config"
	"github.com/depomarket/retail-service/internal/events"
	"github.com/depomarket/retail-service/internal/observability"
	"github.com/depomarket/retail-service/internal/persistence"
	"github.com/depomarket/retail-service/internal/repository"
	"github.com/depomarket/retail-service/internal/service"
	"github.com/depomarket/retail-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	recordRepo := repository.NewRecordRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	recordService := service.NewRecordService(service.RecordDependencies{
		RecordRepo:  recordRepo,
		HistoryRepo: historyRepo,
		Dispatcher:  dispatcher,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AdminRepo:  adminRepo,
		ResetStore: auth.NewPasswordResetStore(redis.Client, cfg.Auth.PasswordResetTTLMinutes),
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Records:        handlers.NewRecordsHandler(recordService),
		AdminRecords:   handlers.NewAdminRecordsHandler(recordService),
		AdminAuth:      handlers.NewAdminAuthHandler(authService),
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.RateLimiter(redis.Client, cfg.RateLimit, logger),
	})

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
