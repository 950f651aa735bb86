package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
)

// KeyFunc derives the client key from a request.
type KeyFunc func(r *http.Request) string

// ClientKey uses the first X-Forwarded-For entry, then the peer host, then
// "unknown".
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return "unknown"
}

// DefaultStatsTimeout bounds a single stats write.
const DefaultStatsTimeout = 250 * time.Millisecond

// Options configures Middleware.
type Options struct {
	Limiter  *Limiter
	KeyFn    KeyFunc
	Stats    StatsStore
	Logger   *slog.Logger
	Language language.Tag
	// StatsTimeout caps how long a request waits on Stats.Record.
	StatsTimeout time.Duration
}

// Middleware rejects requests denied by the limiter with a 429 envelope and
// a Retry-After header.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.KeyFn == nil {
		opts.KeyFn = ClientKey
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Language == language.Und {
		opts.Language = DefaultLanguage
	}
	if opts.Limiter == nil {
		opts.Limiter = New(DefaultConfig(), nil, opts.Logger)
	}
	if opts.StatsTimeout <= 0 {
		opts.StatsTimeout = DefaultStatsTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)
			opts.Logger.Debug("rate limit check",
				slog.String("client", key),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			d := opts.Limiter.Allow(key)

			if opts.Stats != nil {
				ev := StatsEvent{
					Key:     key,
					Allowed: d.Allowed,
					Reason:  d.Reason,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				}
				ctx, cancel := context.WithTimeout(r.Context(), opts.StatsTimeout)
				if err := opts.Stats.Record(ctx, ev); err != nil {
					opts.Logger.Warn("rate limit stats", slog.Any("error", err))
				}
				cancel()
			}

			if !d.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfter))
				msg := DeniedMessage(opts.Language, d.RetryAfter)
				httpx.RespondError(w, r, opts.Logger, httpx.NewError(httpx.ErrTooManyRequests, msg))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
