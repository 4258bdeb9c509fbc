// Package cache mirrors the latest settled payload into Redis and announces
// every update on a pub/sub channel.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
)

const (
	DefaultKey     = "nba:leaders:latest"
	DefaultChannel = "nba:leaders:updates"
	DefaultTTL     = 5 * time.Minute

	writeTimeout = 2 * time.Second
)

// Client is the subset of *redis.Client the publisher uses.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Options names the key and channel written to.
type Options struct {
	Key     string
	Channel string
	TTL     time.Duration
}

// Entry is the cached document.
type Entry struct {
	Seq       uint64        `json:"seq"`
	Phase     string        `json:"phase"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Payload   stats.Payload `json:"payload"`
}

// Publisher writes settled dashboard states to Redis.
type Publisher struct {
	client   Client
	opts     Options
	logger   *slog.Logger
	recorder *metrics.Recorder

	mu      sync.Mutex
	lastSeq uint64
}

// NewPublisher fills empty options with defaults.
func NewPublisher(client Client, opts Options, logger *slog.Logger, recorder *metrics.Recorder) *Publisher {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Channel == "" {
		opts.Channel = DefaultChannel
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Publisher{client: client, opts: opts, logger: logger, recorder: recorder}
}

// Observe is a controller subscriber. It writes each newly settled result
// once; loading states and refresh-flag flips are ignored. Writes are
// serialized so an older result never lands after a newer one.
func (p *Publisher) Observe(s dashboard.State) {
	if s.Loading() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if s.Seq <= p.lastSeq {
		return
	}
	p.lastSeq = s.Seq

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.Write(ctx, s); err != nil {
		logging.Warn(p.logger, "cache publish failed", logging.FieldSeq, s.Seq, "err", err)
	}
}

// Write stores the state under the key and publishes it on the channel.
func (p *Publisher) Write(ctx context.Context, s dashboard.State) error {
	err := p.write(ctx, s)
	p.recorder.RecordCachePublish(err)
	return err
}

func (p *Publisher) write(ctx context.Context, s dashboard.State) error {
	data, err := sonic.Marshal(Entry{
		Seq:       s.Seq,
		Phase:     s.Phase.String(),
		UpdatedAt: s.UpdatedAt.UTC(),
		Payload:   s.Payload(),
	})
	if err != nil {
		return errors.Wrap(err, "encode cache entry")
	}
	if err := p.client.Set(ctx, p.opts.Key, data, p.opts.TTL).Err(); err != nil {
		return errors.Wrapf(err, "set %s", p.opts.Key)
	}
	if err := p.client.Publish(ctx, p.opts.Channel, data).Err(); err != nil {
		return errors.Wrapf(err, "publish %s", p.opts.Channel)
	}
	logging.Info(p.logger, "cache updated", logging.FieldSeq, s.Seq, logging.FieldPhase, s.Phase.String())
	return nil
}

// Latest reads the cached entry. A missing key reports ok=false.
func (p *Publisher) Latest(ctx context.Context) (Entry, bool, error) {
	raw, err := p.client.Get(ctx, p.opts.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrapf(err, "get %s", p.opts.Key)
	}
	var entry Entry
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false, errors.Wrap(err, "decode cache entry")
	}
	return entry, true, nil
}

// Warm applies a cached ready entry to the controller so the first screen
// is not empty while the initial fetch runs.
func (p *Publisher) Warm(ctx context.Context, c *dashboard.Controller) bool {
	entry, ok, err := p.Latest(ctx)
	if err != nil {
		logging.Warn(p.logger, "cache warm failed", "err", err)
		return false
	}
	if !ok || entry.Payload.Empty() != nil {
		return false
	}
	c.Complete(c.Begin(), entry.Payload, nil)
	logging.Info(p.logger, "warmed dashboard from cache", "cached_seq", entry.Seq, logging.FieldCount, entry.Payload.Stats.LineCount())
	return true
}
