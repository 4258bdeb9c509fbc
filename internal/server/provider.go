package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/aggregate"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/config"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers/fixture"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers/nbalive"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers/remote"
)

func selectProvider(cfg config.ProviderConfig, logger *slog.Logger) providers.StatsProvider {
	switch strings.ToLower(cfg.Name) {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderRemote:
		return remote.NewClient(remote.Config{
			BaseURL: cfg.StatsBaseURL,
			APIKey:  cfg.StatsAPIKey,
			Timeout: cfg.Timeout,
		})
	case config.ProviderNBALive:
		return nbalive.NewClient(nbalive.Config{
			BaseURL:     cfg.LiveBaseURL,
			Timeout:     cfg.Timeout,
			Concurrency: cfg.LiveConcurrency,
			Aggregate:   aggregate.Options{TopN: cfg.TopN, MinAttempts: cfg.MinAttempts},
			Logger:      logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Name))
		}
		return fixture.New()
	}
}

type namedProvider interface {
	Name() string
}

// normalizeProviderName returns a lower-cased provider name, preferring the
// provider's own Name when it has one. Used in metrics and logs.
func normalizeProviderName(raw string, provider providers.StatsProvider) string {
	if named, ok := provider.(namedProvider); ok && named.Name() != "" {
		return named.Name()
	}
	if raw != "" {
		return strings.ToLower(raw)
	}
	return "provider"
}
