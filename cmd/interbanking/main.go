package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/interbanking/interbanking-api/internal/app"
	"github.com/interbanking/interbanking-api/internal/auth"
	"github.com/interbanking/interbanking-api/internal/companies"
	"github.com/interbanking/interbanking-api/internal/observability"
	"github.com/interbanking/interbanking-api/internal/platform/cache"
	"github.com/interbanking/interbanking-api/internal/platform/clock"
	"github.com/interbanking/interbanking-api/internal/platform/db"
	"github.com/interbanking/interbanking-api/internal/ratelimit"
	"github.com/interbanking/interbanking-api/internal/transfers"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	now := time.Now()
	logger.Info("timezone configured",
		slog.String("zone", clock.ZoneLabel+clock.Offset(now)),
		slog.String("now", clock.Display(now)))

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	metrics := observability.NewMetrics()
	stats := ratelimit.MultiStats{ratelimit.StatsFunc(metrics.RecordRateLimit)}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, rate limit statistics stay in-process", slog.Any("error", err))
		} else {
			stats = append(stats, ratelimit.NewRedisStatsStore(redisClient,
				ratelimit.WithStatsPrefix(cfg.RateLimitStatsPrefix),
				ratelimit.WithStatsTTL(cfg.RateLimitStatsTTL)))
		}
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	limiter := ratelimit.New(ratelimit.DefaultConfig(), clock.System{}, logger)
	rateLimit := ratelimit.Middleware(ratelimit.Options{
		Limiter:      limiter,
		Stats:        stats,
		Logger:       logger,
		StatsTimeout: cfg.RateLimitStatsTimeout,
	})
	gate := auth.NewGate(cfg.AuthToken, logger)

	companiesService := companies.NewService(companies.NewRepository(dbpool), clock.System{}, logger)
	companiesHandler := companies.NewHandler(logger, companiesService, gate.Middleware, rateLimit)

	transfersService := transfers.NewService(transfers.NewRepository(dbpool), clock.System{}, logger)
	transfersHandler := transfers.NewHandler(logger, transfersService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CompaniesHandler: companiesHandler,
		TransfersHandler: transfersHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
