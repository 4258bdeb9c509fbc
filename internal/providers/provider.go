package providers

import (
	"context"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
)

// StatsProvider fetches the current leader table and game snapshots.
// A degraded payload (message set, no stats) is a successful fetch; only
// transport and upstream failures return an error.
type StatsProvider interface {
	FetchStats(ctx context.Context) (stats.Payload, error)
}

// ProviderFunc adapts a function to StatsProvider.
type ProviderFunc func(ctx context.Context) (stats.Payload, error)

// FetchStats calls f.
func (f ProviderFunc) FetchStats(ctx context.Context) (stats.Payload, error) {
	return f(ctx)
}
