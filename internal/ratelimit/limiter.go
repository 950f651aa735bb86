// Package ratelimit implements the per-client fixed-window limiter with a
// block/cooldown state machine that guards the company reporting routes.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
)

// Config holds the limiter thresholds.
type Config struct {
	MaxRequests   int
	Window        time.Duration
	BlockDuration time.Duration
	// EvictAfter is the grace period after a block expires before an idle
	// entry can be dropped.
	EvictAfter time.Duration
}

// DefaultConfig returns the production thresholds: 5 requests per 30s,
// blocked for 10s once exceeded.
func DefaultConfig() Config {
	return Config{
		MaxRequests:   5,
		Window:        30 * time.Second,
		BlockDuration: 10 * time.Second,
		EvictAfter:    60 * time.Second,
	}
}

// Reason explains a decision.
type Reason string

const (
	ReasonAllowed       Reason = "allowed"
	ReasonBlocked       Reason = "blocked"
	ReasonLimitExceeded Reason = "limit_exceeded"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed bool
	Reason  Reason
	// Count is the number of requests recorded in the current window.
	Count int
	// RetryAfter is the whole number of seconds the client must wait.
	RetryAfter int
}

type entry struct {
	requests     []int64
	blockedUntil int64
}

func (e *entry) blocked() bool { return e.blockedUntil != 0 }

// Limiter tracks request history per client key. It is safe for concurrent
// use; a single mutex guards the map and every entry.
type Limiter struct {
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// New constructs a Limiter. Zero-valued config fields fall back to
// DefaultConfig.
func New(cfg Config, c clock.Clock, logger *slog.Logger) *Limiter {
	def := DefaultConfig()
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = def.BlockDuration
	}
	if cfg.EvictAfter <= 0 {
		cfg.EvictAfter = def.EvictAfter
	}
	if c == nil {
		c = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		cfg:     cfg,
		clock:   c,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Config returns the effective thresholds.
func (l *Limiter) Config() Config { return l.cfg }

// Allow records a request for key and decides whether it may proceed.
func (l *Limiter) Allow(key string) Decision {
	now := l.clock.Now().UnixMilli()

	l.mu.Lock()
	defer l.mu.Unlock()

	d := l.decide(key, now)
	if evicted := l.evict(now); evicted > 0 {
		l.logger.Info("rate limit entries evicted", slog.Int("count", evicted))
	}
	return d
}

func (l *Limiter) decide(key string, now int64) Decision {
	window := l.cfg.Window.Milliseconds()
	block := l.cfg.BlockDuration.Milliseconds()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}

	if e.blocked() && now < e.blockedUntil {
		remaining := int((e.blockedUntil - now + 999) / 1000)
		l.logger.Warn("client is blocked",
			slog.String("client", key),
			slog.Int("remaining_s", remaining))
		return Decision{Reason: ReasonBlocked, Count: len(e.requests), RetryAfter: remaining}
	}

	if e.blocked() {
		e.blockedUntil = 0
		e.requests = e.requests[:0]
		l.logger.Info("client unblocked", slog.String("client", key))
	}

	e.requests = prune(e.requests, now, window)

	if len(e.requests) >= l.cfg.MaxRequests {
		e.blockedUntil = now + block
		l.logger.Warn("client exceeded rate limit",
			slog.String("client", key),
			slog.Int("max_requests", l.cfg.MaxRequests),
			slog.Duration("window", l.cfg.Window),
			slog.Duration("block", l.cfg.BlockDuration))
		return Decision{
			Reason:     ReasonLimitExceeded,
			Count:      len(e.requests),
			RetryAfter: int(block / 1000),
		}
	}

	e.requests = append(e.requests, now)
	l.logger.Info("rate limit request accepted",
		slog.String("client", key),
		slog.Int("count", len(e.requests)),
		slog.Int("max_requests", l.cfg.MaxRequests))
	return Decision{Allowed: true, Reason: ReasonAllowed, Count: len(e.requests)}
}

// evict drops entries with no request inside the window and no block, or
// whose block ended more than EvictAfter ago. Caller holds l.mu.
func (l *Limiter) evict(now int64) int {
	window := l.cfg.Window.Milliseconds()
	grace := l.cfg.EvictAfter.Milliseconds()

	evicted := 0
	for key, e := range l.entries {
		e.requests = prune(e.requests, now, window)
		if len(e.requests) != 0 {
			continue
		}
		if !e.blocked() || now > e.blockedUntil+grace {
			delete(l.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len reports how many client entries are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// prune keeps timestamps strictly younger than window, in place.
func prune(requests []int64, now, window int64) []int64 {
	kept := requests[:0]
	for _, ts := range requests {
		if now-ts < window {
			kept = append(kept, ts)
		}
	}
	return kept
}
