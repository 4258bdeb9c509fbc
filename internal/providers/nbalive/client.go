// Package nbalive builds the stats payload from the NBA live data CDN:
// today's scoreboard plus one box score per started game.
package nbalive

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/aggregate"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/players"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers/upstream"
)

const (
	defaultBaseURL     = "https://cdn.nba.com/static/json/liveData"
	scoreboardPath     = "/scoreboard/todaysScoreboard_00.json"
	boxscorePathFormat = "/boxscore/boxscore_"
	defaultConcurrency = 4

	// MessageNoActiveGames is returned before any game tips off.
	MessageNoActiveGames = "No games are currently active or completed. Check back later for today's stats."
	// MessageNoPlayerStats is returned when started games have no players with minutes.
	MessageNoPlayerStats = "No player statistics available yet"
)

// Config controls the live data client.
type Config struct {
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Concurrency int
	Aggregate   aggregate.Options
	Logger      *slog.Logger
}

// Client aggregates the live feed into a leader table.
type Client struct {
	baseURL     string
	httpClient  upstream.Doer
	concurrency int
	opts        aggregate.Options
	logger      *slog.Logger
}

// NewClient constructs a live data client.
func NewClient(cfg Config) *Client {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Client{
		baseURL:     upstream.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		httpClient:  upstream.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		concurrency: concurrency,
		opts:        cfg.Aggregate,
		logger:      cfg.Logger,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchStats reads the scoreboard and every started game's box score. A
// scoreboard failure is a fetch error. A failed box score only drops that
// game's players.
func (c *Client) FetchStats(ctx context.Context) (stats.Payload, error) {
	snapshots, err := c.fetchScoreboard(ctx)
	if err != nil {
		return stats.Payload{}, err
	}

	started := make([]games.Snapshot, 0, len(snapshots))
	for _, g := range snapshots {
		if g.HasStarted() {
			started = append(started, g)
		}
	}
	logging.Info(c.logger, "scoreboard fetched", logging.FieldProvider, providerName, logging.FieldCount, len(snapshots), "started", len(started))
	if len(started) == 0 {
		return stats.Degraded(MessageNoActiveGames, snapshots), nil
	}

	lines := c.fetchBoxscores(ctx, started)
	if err := ctx.Err(); err != nil {
		return stats.Payload{}, err
	}

	table, err := aggregate.Build(lines, c.opts)
	if errors.Is(err, aggregate.ErrNoPlayers) {
		return stats.Degraded(MessageNoPlayerStats, snapshots), nil
	}
	if err != nil {
		return stats.Payload{}, &providers.FetchError{Provider: providerName, Err: err}
	}
	return stats.Success(table, snapshots), nil
}

func (c *Client) fetchScoreboard(ctx context.Context) ([]games.Snapshot, error) {
	body, err := upstream.Get(ctx, c.httpClient, providerName, c.baseURL+scoreboardPath, nil)
	if err != nil {
		return nil, err
	}
	var resp scoreboardResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, &providers.FetchError{Provider: providerName, Message: "decode scoreboard", Err: err}
	}
	if resp.Scoreboard.Games == nil {
		return []games.Snapshot{}, nil
	}
	return resp.Scoreboard.Games, nil
}

type gameLines struct {
	index int
	lines []players.StatLine
}

func (c *Client) fetchBoxscores(ctx context.Context, started []games.Snapshot) []players.StatLine {
	p := pool.NewWithResults[gameLines]().WithMaxGoroutines(c.concurrency)
	for i, g := range started {
		p.Go(func() gameLines {
			box, err := c.fetchBoxscore(ctx, g.ID)
			if err != nil {
				logging.Warn(c.logger, "skipping game box score",
					logging.FieldProvider, providerName,
					logging.FieldGameID, g.ID,
					"error", err,
				)
				return gameLines{index: i}
			}
			return gameLines{index: i, lines: mapBoxscore(g, box)}
		})
	}
	results := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].index < results[b].index })

	var lines []players.StatLine
	for _, r := range results {
		lines = append(lines, r.lines...)
	}
	return lines
}

func (c *Client) fetchBoxscore(ctx context.Context, gameID string) (boxscoreResponse, error) {
	var resp boxscoreResponse
	body, err := upstream.Get(ctx, c.httpClient, providerName, c.baseURL+boxscorePathFormat+gameID+".json", nil)
	if err != nil {
		return resp, err
	}
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return resp, errors.Wrapf(err, "decode box score %s", gameID)
	}
	return resp, nil
}
