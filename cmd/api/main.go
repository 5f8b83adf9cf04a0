package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/complaint-desk/internal/api/http"
	"github.com/spec-kit/complaint-desk/internal/api/http/handlers"
	"github.com/spec-kit/complaint-desk/internal/cache"
	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/persistence"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/service"
	"github.com/spec-kit/complaint-desk/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger))
	if cfg.Kafka.Enabled() {
		forwarder, err := events.NewKafkaForwarder(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, logger)
		if err != nil {
			logger.Fatal("failed to init kafka forwarder", zap.Error(err))
		}
		defer forwarder.Close() //nolint:errcheck
		worker.StartKafkaForwarder(dispatcher, forwarder)
		logger.Info("forwarding events to kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	pool := pg.PoolHandle()
	complaintRepo := repository.NewComplaintRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	complaintService := service.NewComplaintService(complaintRepo, dispatcher)
	userService := service.NewUserService(userRepo, complaintRepo, dispatcher)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Cache:      cache.NewTicketCache(redis.Client, cfg.Cache.TicketTTL()),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	var redisProbe handlers.Pinger
	if redis.Enabled() {
		redisProbe = redis
	}

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name, httptransport.MiddlewareConfig{
		Logger:     logger,
		Metrics:    metrics,
		CORSOrigin: cfg.CORS.Origin,
		Timeout:    cfg.App.RequestTimeout(),
	}, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisProbe),
		Complaints: handlers.NewComplaintsHandler(complaintService),
		Users:      handlers.NewUsersHandler(userService),
		Tickets:    handlers.NewTicketsHandler(ticketService, metrics),
		Metrics:    handlers.NewMetricsHandler(metrics),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
