package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/simrs-labs/complaint-service/internal/api/http"
	"github.com/simrs-labs/complaint-service/internal/api/http/handlers"
	"github.com/simrs-labs/complaint-service/internal/auth"
	"github.com/simrs-labs/complaint-service/internal/cache"
	"github.com/simrs-labs/complaint-service/internal/config"
	"github.com/simrs-labs/complaint-service/internal/events"
	"github.com/simrs-labs/complaint-service/internal/observability"
	"github.com/simrs-labs/complaint-service/internal/persistence"
	"github.com/simrs-labs/complaint-service/internal/repository"
	"github.com/simrs-labs/complaint-service/internal/service"
	"github.com/simrs-labs/complaint-service/internal/sla"
	"github.com/simrs-labs/complaint-service/internal/worker"
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

	var calendar *sla.Calendar
	if cfg.SLA.CalendarPath != "" {
		calendar, err = sla.LoadCalendar(cfg.SLA.CalendarPath)
		if err != nil {
			logger.Warn("business hours calendar unavailable, using wall clock", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	historyRepo := repository.NewTicketHistoryRepository(pool)
	unitRepo := repository.NewUnitRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	patientTypeRepo := repository.NewPatientTypeRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	slaRuleRepo := repository.NewSLARuleRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      ticketRepo,
		MessageRepo:     messageRepo,
		HistoryRepo:     historyRepo,
		UnitRepo:        unitRepo,
		CategoryRepo:    categoryRepo,
		PatientTypeRepo: patientTypeRepo,
		StaffRepo:       staffRepo,
		SLARuleRepo:     slaRuleRepo,
		Calendar:        calendar,
		Dispatcher:      dispatcher,
		Metrics:         metrics,
	})
	slaService := service.NewSLAService(slaRuleRepo, ticketRepo, unitRepo, calendar)
	dashboardCache := cache.NewDashboardCache(redis.Client, cfg.Dashboard.CacheTTL())
	dashboardService := service.NewDashboardService(ticketRepo, dashboardCache, logger)
	staffService := service.NewStaffService(staffRepo, unitRepo, cfg.Auth.BcryptCost)
	authService := service.NewAuthService(*cfg, staffRepo, resetRepo)
	notificationService := service.NewNotificationService(dispatcher, notificationRepo, ticketRepo, staffRepo, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Complaints:     handlers.NewComplaintsHandler(ticketService),
		Reference:      handlers.NewReferenceHandler(unitRepo, categoryRepo, patientTypeRepo),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		SLARules:       handlers.NewSLARulesHandler(slaService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Staff:          handlers.NewStaffHandler(authService, staffService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Metrics:        metrics,
		AuthMiddleware: authMiddleware,
	})

	scanner := worker.NewBreachScanner(ticketRepo, ticketService, metrics, logger,
		cfg.SLA.ScanInterval(), cfg.SLA.ScanBatchSize)
	go scanner.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
