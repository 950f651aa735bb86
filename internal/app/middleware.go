package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/unrolled/secure"

	"github.com/interbanking/interbanking-api/internal/observability"
	"github.com/interbanking/interbanking-api/internal/platform/httpx"
	"github.com/interbanking/interbanking-api/internal/ratelimit"
	"github.com/interbanking/interbanking-api/internal/shared"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics
}

// MiddlewareStack installs the API middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'",
		SSLRedirect:           cfg.Config.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	middlewares := []func(http.Handler) http.Handler{
		RequestContext,
		RequestLogger(logger),
		Recoverer(logger),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Process has already answered (HTTPS redirect or bad host).
				if err := secureMiddleware.Process(w, r); err != nil {
					logger.Warn("secure headers short-circuited request", slog.Any("error", err))
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.Config.AllowedOrigins(),
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader, "Retry-After"},
			MaxAge:         300,
		}),
	}
	if cfg.Config != nil && cfg.Config.GlobalRateLimit > 0 {
		middlewares = append(middlewares, GlobalRateLimit(cfg.Config.GlobalRateLimit, logger))
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, cfg.Metrics.Middleware)
	}
	return middlewares
}

// RequestContext assigns a fresh request id and records the start time.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := shared.ContextWithRequestID(r.Context(), id)
		ctx = shared.ContextWithStart(ctx, time.Now())
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger writes one line when a request arrives and one when it
// completes.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start, ok := shared.StartFromContext(r.Context())
			if !ok {
				start = time.Now()
			}
			client := ratelimit.ClientKey(r)
			requestID := shared.RequestIDFromContext(r.Context())

			logger.Info(fmt.Sprintf("--> %s %s - %s", r.Method, r.URL.RequestURI(), client),
				slog.String("request_id", requestID),
				slog.String("user_agent", r.UserAgent()))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			logger.Info(fmt.Sprintf("<-- %s %s - %d - %dms", r.Method, r.URL.RequestURI(), status, elapsed.Milliseconds()),
				slog.String("request_id", requestID),
				slog.Int("status", status),
				slog.Int64("duration_ms", elapsed.Milliseconds()))
		})
	}
}

// Recoverer turns panics into the uniform 500 body.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered", slog.Any("panic", rec), slog.String("stack", string(debug.Stack())))
				httpx.RespondStatus(w, r, logger, http.StatusInternalServerError, fmt.Errorf("panic: %v", rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// GlobalRateLimit is a coarse per-IP guard applied to every route, on top of
// the sliding window limiter used by the listing endpoints.
func GlobalRateLimit(perMinute int, logger *slog.Logger) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return ratelimit.ClientKey(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(60))
			httpx.RespondError(w, r, logger, httpx.NewError(httpx.ErrTooManyRequests, "Too many requests"))
		}),
	)
}
