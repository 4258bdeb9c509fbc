package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
)

// rateLimitedProvider wraps a StatsProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     StatsProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns a StatsProvider that spaces upstream calls
// at least interval apart. The first call goes straight through; later calls
// block until their slot opens or ctx ends.
func NewRateLimitedProvider(next StatsProvider, interval time.Duration, logger *slog.Logger) StatsProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return stats.Payload{}, ErrProviderUnavailable
	}

	wait := p.reserve()
	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled")
			return stats.Payload{}, ctx.Err()
		case <-timer.C:
		}
	}
	return p.next.FetchStats(ctx)
}

// reserve claims the next free slot and returns how long to wait for it.
func (p *rateLimitedProvider) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	slot := now
	if !p.last.IsZero() {
		if next := p.last.Add(p.interval); next.After(now) {
			slot = next
		}
	}
	p.last = slot
	return slot.Sub(now)
}
