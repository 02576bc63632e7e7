package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/owenj053/netone-backend/internal/api/http"
	"github.com/owenj053/netone-backend/internal/api/http/handlers"
	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/config"
	"github.com/owenj053/netone-backend/internal/events"
	"github.com/owenj053/netone-backend/internal/observability"
	"github.com/owenj053/netone-backend/internal/persistence"
	"github.com/owenj053/netone-backend/internal/repository"
	"github.com/owenj053/netone-backend/internal/service"
	"github.com/owenj053/netone-backend/internal/weather"
	"github.com/owenj053/netone-backend/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	activityLogRepo := repository.NewActivityLogRepository(pool)
	permitRepo := repository.NewPermitRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	auditTrail := service.NewAuditTrail(auditRepo, logger, metrics)
	dispatcher := events.NewInMemoryDispatcher()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokens, userRepo)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Audit:      auditTrail,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	assetService := service.NewAssetService(assetRepo, auditTrail, logger)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      ticketRepo,
		AssetRepo:       assetRepo,
		ActivityLogRepo: activityLogRepo,
		Audit:           auditTrail,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	permitService := service.NewPermitService(service.PermitDependencies{
		PermitRepo: permitRepo,
		TicketRepo: ticketRepo,
		Audit:      auditTrail,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	dispatchService := service.NewDispatchService(service.DispatchDependencies{
		TicketRepo:   ticketRepo,
		LocationRepo: locationRepo,
		Audit:        auditTrail,
		Logger:       logger,
	})
	reportService := service.NewReportService(reportRepo)

	weatherProvider := weather.NewHTTPProvider(cfg.Weather)
	if weatherProvider != nil {
		weatherProvider = weather.WithCache(weatherProvider, redis.Client, cfg.Weather.CacheTTL(), logger)
	}
	enrichmentService := service.NewEnrichmentService(service.EnrichmentDependencies{
		TicketRepo: ticketRepo,
		AssetRepo:  assetRepo,
		Provider:   weatherProvider,
		Logger:     logger,
		Metrics:    metrics,
	})

	enrichmentWorker := worker.NewEnrichmentWorker(cfg.Enrichment, enrichmentService, logger, metrics)
	enrichmentWorker.Register(dispatcher)
	enrichmentWorker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(userService),
		Assets:         handlers.NewAssetsHandler(assetService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Permits:        handlers.NewPermitsHandler(permitService),
		Dispatch:       handlers.NewDispatchHandler(dispatchService),
		Reports:        handlers.NewReportsHandler(reportService),
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
	enrichmentWorker.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
