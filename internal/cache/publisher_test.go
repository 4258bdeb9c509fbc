package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/testutil"
)

type fakeRedis struct {
	mu         sync.Mutex
	values     map[string][]byte
	ttls       map[string]time.Duration
	published  map[string][][]byte
	setErr     error
	publishErr error
	beforeSet  func()
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values:    map[string][]byte{},
		ttls:      map[string]time.Duration{},
		published: map[string][][]byte{},
	}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	if f.beforeSet != nil {
		f.beforeSet()
	}
	if f.setErr != nil {
		cmd.SetErr(f.setErr)
		return cmd
	}
	f.mu.Lock()
	f.values[key] = value.([]byte)
	f.ttls[key] = expiration
	f.mu.Unlock()
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	f.mu.Lock()
	val, ok := f.values[key]
	f.mu.Unlock()
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(val))
	return cmd
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel)
	if f.publishErr != nil {
		cmd.SetErr(f.publishErr)
		return cmd
	}
	f.mu.Lock()
	f.published[channel] = append(f.published[channel], message.([]byte))
	f.mu.Unlock()
	cmd.SetVal(1)
	return cmd
}

func TestNewPublisherDefaults(t *testing.T) {
	p := NewPublisher(newFakeRedis(), Options{}, nil, nil)
	assert.Equal(t, DefaultKey, p.opts.Key)
	assert.Equal(t, DefaultChannel, p.opts.Channel)
	assert.Equal(t, DefaultTTL, p.opts.TTL)
}

func TestWriteStoresAndPublishes(t *testing.T) {
	fake := newFakeRedis()
	rec := metrics.NewRecorder()
	p := NewPublisher(fake, Options{Key: "k", Channel: "c", TTL: time.Minute}, nil, rec)
	state := testutil.NewController(t, testutil.SamplePayload("game-1")).Snapshot()

	require.NoError(t, p.Write(context.Background(), state))

	assert.Equal(t, time.Minute, fake.ttls["k"])
	require.Len(t, fake.published["c"], 1)
	var entry Entry
	require.NoError(t, sonic.Unmarshal(fake.values["k"], &entry))
	assert.Equal(t, "ready", entry.Phase)
	assert.Equal(t, state.Seq, entry.Seq)
	require.NotNil(t, entry.Payload.Stats)
	assert.Equal(t, 2, entry.Payload.Stats.Len())
	assert.Equal(t, 1, rec.Dashboard().CachePublishes)
}

func TestWriteReportsErrors(t *testing.T) {
	state := testutil.NewController(t, testutil.SamplePayload("game-1")).Snapshot()

	fake := newFakeRedis()
	fake.setErr = errors.New("connection refused")
	rec := metrics.NewRecorder()
	err := NewPublisher(fake, Options{}, nil, rec).Write(context.Background(), state)
	require.ErrorContains(t, err, "connection refused")
	assert.Equal(t, 1, rec.Dashboard().CacheErrors)

	fake = newFakeRedis()
	fake.publishErr = errors.New("no channel")
	err = NewPublisher(fake, Options{}, nil, nil).Write(context.Background(), state)
	require.ErrorContains(t, err, "publish "+DefaultChannel)
}

func TestObserveSkipsLoadingAndRepeats(t *testing.T) {
	fake := newFakeRedis()
	p := NewPublisher(fake, Options{}, nil, nil)
	c := dashboard.NewController(nil, nil)
	unsubscribe := c.Subscribe(p.Observe)
	defer unsubscribe()

	seq := c.Begin()
	assert.Empty(t, fake.published[DefaultChannel], "loading state is not cached")

	c.Complete(seq, testutil.SamplePayload("game-1"), nil)
	require.Len(t, fake.published[DefaultChannel], 1)

	c.Begin()
	assert.Len(t, fake.published[DefaultChannel], 1, "refresh flag flip is not republished")

	c.Complete(seq+1, stats.Degraded("later", nil), nil)
	assert.Len(t, fake.published[DefaultChannel], 2)
}

func TestObserveWritesInSeqOrder(t *testing.T) {
	fake := newFakeRedis()
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fake.beforeSet = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}
	p := NewPublisher(fake, Options{}, nil, nil)

	olderDone := make(chan struct{})
	go func() {
		defer close(olderDone)
		p.Observe(dashboard.State{Phase: dashboard.PhaseError, Message: "older", Seq: 1})
	}()
	<-entered

	newerDone := make(chan struct{})
	go func() {
		defer close(newerDone)
		p.Observe(dashboard.State{Phase: dashboard.PhaseError, Message: "newer", Seq: 2})
	}()
	select {
	case <-newerDone:
		t.Fatal("newer write finished while the older one was in flight")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-olderDone
	<-newerDone

	entry, ok, err := p.Latest(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(2), entry.Seq)
	assert.Equal(t, "newer", entry.Payload.Error)
}

func TestLatestAndWarm(t *testing.T) {
	fake := newFakeRedis()
	p := NewPublisher(fake, Options{}, nil, nil)

	_, ok, err := p.Latest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	c := dashboard.NewController(nil, nil)
	assert.False(t, p.Warm(context.Background(), c))

	source := testutil.NewController(t, testutil.SamplePayload("game-1")).Snapshot()
	require.NoError(t, p.Write(context.Background(), source))

	assert.True(t, p.Warm(context.Background(), c))
	got := c.Snapshot()
	assert.Equal(t, dashboard.PhaseReady, got.Phase)
	assert.Len(t, got.Games, 1)
}

func TestWarmIgnoresCorruptEntry(t *testing.T) {
	fake := newFakeRedis()
	fake.values[DefaultKey] = []byte("not json")
	p := NewPublisher(fake, Options{}, nil, nil)

	_, _, err := p.Latest(context.Background())
	require.Error(t, err)
	assert.False(t, p.Warm(context.Background(), dashboard.NewController(nil, nil)))
}

func TestWarmSkipsDegradedEntry(t *testing.T) {
	fake := newFakeRedis()
	p := NewPublisher(fake, Options{}, nil, nil)
	degraded := testutil.NewController(t, stats.Degraded("No games", nil)).Snapshot()
	require.NoError(t, p.Write(context.Background(), degraded))

	assert.False(t, p.Warm(context.Background(), dashboard.NewController(nil, nil)))
}
