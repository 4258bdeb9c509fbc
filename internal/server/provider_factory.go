package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/config"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.ProviderConfig) providers.StatsProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap spaces upstream calls by MinInterval (zero disables it) and retries transient failures.
func (f providerFactory) wrap(cfg config.ProviderConfig, base providers.StatsProvider) providers.StatsProvider {
	name := normalizeProviderName(cfg.Name, base)
	var p providers.StatsProvider = base
	if cfg.MinInterval > 0 {
		p = providers.NewRateLimitedProvider(p, cfg.MinInterval, f.logger)
	}
	return providers.NewRetryingProvider(p, f.logger, f.metrics, name, cfg.RetryAttempts, cfg.RetryBackoff)
}

// BuildProvider returns the configured provider with the same rate limit and
// retry wrappers the server uses. The terminal dashboard fetches through it.
func BuildProvider(cfg config.ProviderConfig, logger *slog.Logger) providers.StatsProvider {
	return newProviderFactory(logger, nil).build(cfg)
}
