// Command lambda serves the company endpoints from AWS Lambda behind an API
// Gateway proxy integration.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/interbanking/interbanking-api/internal/app"
	"github.com/interbanking/interbanking-api/internal/auth"
	"github.com/interbanking/interbanking-api/internal/companies"
	"github.com/interbanking/interbanking-api/internal/platform/clock"
	"github.com/interbanking/interbanking-api/internal/platform/db"
	"github.com/interbanking/interbanking-api/internal/ratelimit"
	"github.com/interbanking/interbanking-api/internal/serverless"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping lambda startup")
		return
	}

	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	// The pool is opened on the first invocation and kept for warm starts.
	proxy := serverless.NewProxy(logger, func(ctx context.Context) (http.Handler, error) {
		dbpool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, err
		}
		return newHandler(cfg, logger, companies.NewRepository(dbpool)), nil
	})

	lambda.Start(proxy.Handle)
}

func newHandler(cfg *app.Config, logger *slog.Logger, repo companies.Repository) http.Handler {
	limiter := ratelimit.New(ratelimit.DefaultConfig(), clock.System{}, logger)
	service := companies.NewService(repo, clock.System{}, logger)
	handler := companies.NewHandler(logger, service,
		auth.NewGate(cfg.AuthToken, logger).Middleware,
		ratelimit.Middleware(ratelimit.Options{
			Limiter:      limiter,
			Logger:       logger,
			StatsTimeout: cfg.RateLimitStatsTimeout,
		}))

	return app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CompaniesHandler: handler,
	})
}
