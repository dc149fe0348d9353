package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	docs "github.com/asep96/OSRS-GrandExchange-App/docs"
	historyservice "github.com/asep96/OSRS-GrandExchange-App/internal/application/service/history"
	"github.com/asep96/OSRS-GrandExchange-App/internal/application/service/ingest"
	"github.com/asep96/OSRS-GrandExchange-App/internal/application/service/market"
	"github.com/asep96/OSRS-GrandExchange-App/internal/config"
	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/broker"
	infracatalog "github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/catalog"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/metrics"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/postgres"
	infraprices "github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/prices"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/wiki"
	infrahttp "github.com/asep96/OSRS-GrandExchange-App/internal/interfaces/http"
	"github.com/asep96/OSRS-GrandExchange-App/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.Log.Level)

	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatalf("failed to connect postgres: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalf("failed to apply schema: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New()
	if err := recorder.Register(registry); err != nil {
		logger.Fatalf("failed to register metrics: %v", err)
	}

	source, err := wiki.NewClient(cfg.Wiki, wiki.WithMetrics(recorder))
	if err != nil {
		logger.Fatalf("failed to init prices api client: %v", err)
	}

	priceRepo := infraprices.NewRepository(pool)
	catalogRepo := infracatalog.NewRepository(pool)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	ingestOpts := []ingest.Option{
		ingest.WithMetrics(recorder),
		ingest.WithLogger(logger),
	}
	if cfg.RabbitMQ.URL != "" {
		publisher, err := broker.DialPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.RefreshExchange, logger)
		if err != nil {
			logger.Fatalf("failed to init refresh publisher: %v", err)
		}
		defer publisher.Close()
		ingestOpts = append(ingestOpts, ingest.WithNotifier(publisher))
	}

	ingestService := ingest.NewService(source, priceRepo, catalogRepo, ingestOpts...)
	marketService := market.NewService(catalogRepo, priceRepo, market.RuneCost{
		NatureName:  cfg.Runes.NatureName,
		FireName:    cfg.Runes.FireName,
		FirePerCast: cfg.Runes.FirePerCast,
	}, cfg.Freshness.MaxAge)
	historyService := historyservice.NewService(source)

	handler := infrahttp.NewHandler(marketService, historyService, ingestService,
		infrahttp.WithCache(redisClient, cfg.Cache.TTL()),
		infrahttp.WithCronSecret(cfg.Admin.CronSecret),
		infrahttp.WithStaticDir(cfg.StaticDir),
		infrahttp.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		infrahttp.WithLogger(logger),
	)

	if cfg.RabbitMQ.URL != "" && redisClient != nil {
		// Refreshes run by cmd/refresh or another replica invalidate this
		// replica's response cache.
		consumer, err := broker.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.RefreshExchange,
			func(ctx context.Context, event feed.RefreshEvent) error {
				logger.WithField("kind", event.Kind).Debug("refresh event received")
				return handler.InvalidateCache(ctx)
			}, logger)
		if err != nil {
			logger.Fatalf("failed to init refresh consumer: %v", err)
		}
		if err := consumer.Start(ctx); err != nil {
			logger.Fatalf("failed to start refresh consumer: %v", err)
		}
		defer consumer.Close()
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
	}
	logger.Info("server stopped")
}
