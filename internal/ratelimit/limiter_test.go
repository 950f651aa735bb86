package ratelimit

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 11, 14, 12, 0, 0, 0, clock.Zone)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLimiter(c clock.Clock) *Limiter {
	return New(DefaultConfig(), c, discardLogger())
}

func TestAllowBlocksSixthRequestInWindow(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	for i := 1; i <= 5; i++ {
		d := l.Allow("1.2.3.4")
		require.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, i, d.Count)
		clk.Advance(time.Second)
	}

	d := l.Allow("1.2.3.4")
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonLimitExceeded, d.Reason)
	assert.Equal(t, 10, d.RetryAfter)
	assert.Equal(t, "Acceso denegado. Volver a intentar en 10 segundos", DeniedMessage(DefaultLanguage, d.RetryAfter))
}

func TestAllowWhileBlockedReportsRemainingAndDoesNotExtend(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("k").Allowed)
	}
	require.Equal(t, ReasonLimitExceeded, l.Allow("k").Reason)

	clk.Advance(3 * time.Second)
	d := l.Allow("k")
	assert.Equal(t, ReasonBlocked, d.Reason)
	assert.Equal(t, 7, d.RetryAfter)

	clk.Advance(6500 * time.Millisecond)
	d = l.Allow("k")
	assert.Equal(t, ReasonBlocked, d.Reason)
	assert.Equal(t, 1, d.RetryAfter)

	// 10s after the block started, regardless of the denials in between.
	clk.Advance(500 * time.Millisecond)
	d = l.Allow("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func TestAllowResetsHistoryAfterBlockExpires(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	for i := 0; i < 5; i++ {
		l.Allow("k")
	}
	l.Allow("k")
	clk.Advance(10 * time.Second)

	for i := 1; i <= 5; i++ {
		d := l.Allow("k")
		require.True(t, d.Allowed, "request %d after unblock", i)
		assert.Equal(t, i, d.Count)
	}
	assert.False(t, l.Allow("k").Allowed)
}

func TestAllowSlidesOutOldRequests(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("k").Allowed)
	}
	clk.Advance(30 * time.Second)

	d := l.Allow("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func TestAllowKeysAreIndependent(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	for i := 0; i < 5; i++ {
		l.Allow("a")
	}
	require.False(t, l.Allow("a").Allowed)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("b").Allowed)
	}
}

func TestEvictDropsIdleEntries(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	l.Allow("idle")
	clk.Advance(31 * time.Second)
	l.Allow("active")

	assert.Equal(t, 1, l.Len())
}

func TestEvictKeepsRecentlyBlockedEntries(t *testing.T) {
	clk := newManualClock()
	l := newTestLimiter(clk)

	for i := 0; i < 6; i++ {
		l.Allow("blocked")
	}
	// Window has passed but the block ended less than 60s ago.
	clk.Advance(40 * time.Second)
	l.Allow("other")
	assert.Equal(t, 2, l.Len())

	// Block ended 10s after start; grace runs out 70s after start.
	clk.Advance(31 * time.Second)
	l.Allow("other")
	assert.Equal(t, 1, l.Len())
}

func TestAllowConcurrentSameKey(t *testing.T) {
	l := newTestLimiter(clock.Fixed{At: time.Now()})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, allowed)
}

func TestNewFillsDefaults(t *testing.T) {
	l := New(Config{}, nil, nil)
	assert.Equal(t, DefaultConfig(), l.Config())
}
