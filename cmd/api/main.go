package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lodge-registration/internal/api/http"
	"github.com/spec-kit/lodge-registration/internal/api/http/handlers"
	"github.com/spec-kit/lodge-registration/internal/auth"
	"github.com/spec-kit/lodge-registration/internal/config"
	"github.com/spec-kit/lodge-registration/internal/events"
	"github.com/spec-kit/lodge-registration/internal/observability"
	"github.com/spec-kit/lodge-registration/internal/persistence"
	"github.com/spec-kit/lodge-registration/internal/repository"
	"github.com/spec-kit/lodge-registration/internal/service"
	"github.com/spec-kit/lodge-registration/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	applicationRepo := repository.NewApplicationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	if pool != nil {
		if count, err := adminRepo.Count(ctx); err == nil {
			logger.Info("admin allow-list loaded", zap.Int("admins", count))
		}
	}

	statsCache := service.NewRedisStatsCache(redis, cfg.Redis.StatsTTL(), logger)
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		StatsCache:      statsCache,
		Dispatcher:      dispatcher,
		Metrics:         metrics,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, adminRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: 4 << 20, // embedded passport photos arrive in the JSON body
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Rules:          handlers.NewRulesHandler(),
		Applications:   handlers.NewApplicationsHandler(applicationService, authService),
		Users:          handlers.NewUsersHandler(authService, applicationService),
		Admin:          handlers.NewAdminHandler(authService, applicationService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
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
