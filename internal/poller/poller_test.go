package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/teststubs"
)

func samplePayload(name string) stats.Payload {
	table := leaders.NewCategoryTable()
	table.Add("Points", name+" (BOS) [Final]: 30 ||| ")
	return stats.Success(table, []games.Snapshot{{ID: "g1", Status: games.StatusFinal}})
}

func TestPollerFetchesAndCompletesSink(t *testing.T) {
	provider := &teststubs.StubProvider{
		Payload: samplePayload("Jayson Tatum"),
		Notify:  make(chan struct{}),
	}
	sink := &teststubs.StubSink{}

	p := New(provider, sink, nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())

	results := sink.Results()
	if len(results) == 0 {
		t.Fatalf("expected completions")
	}
	if results[0].Seq != 1 || results[0].Err != nil {
		t.Fatalf("unexpected first completion %+v", results[0])
	}
	if got := results[0].Payload.Stats.Lines("Points"); len(got) != 1 {
		t.Fatalf("unexpected payload lines %v", got)
	}
	if provider.Calls.Load() < 1 {
		t.Fatalf("expected at least one fetch call")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	provider := &teststubs.StubProvider{Notify: make(chan struct{})}

	p := New(provider, &teststubs.StubSink{}, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())

	time.Sleep(10 * time.Millisecond)
	callsAfterStop := provider.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if provider.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, provider.Calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSink{}, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSink{}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSink{}, nil, nil, 0)
	if p.Interval() != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.Interval())
	}
	if defaultInterval != time.Minute {
		t.Fatalf("expected one minute refresh, got %s", defaultInterval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&teststubs.StubProvider{}, &teststubs.StubSink{}, nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	provider := &teststubs.StubProvider{Err: errors.New("boom")}
	sink := &teststubs.StubSink{}

	p := New(provider, sink, nil, metrics.NewRecorder(), time.Millisecond)
	ctx := context.Background()

	if err := p.fetchOnce(ctx); err == nil {
		t.Fatalf("expected error returned")
	}
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}
	if got := sink.Results(); len(got) != 1 || got[0].Err == nil {
		t.Fatalf("expected failure handed to sink, got %+v", got)
	}

	provider.Err = nil
	provider.Payload = stats.Degraded("No player statistics available yet", nil)
	if err := p.fetchOnce(ctx); err != nil {
		t.Fatalf("degraded payload is a successful fetch: %v", err)
	}
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastSuccess.IsZero() || !status.IsReady() {
		t.Fatalf("expected ready after success, got %+v", status)
	}
}

func TestPollerNotReadyAfterRepeatedFailures(t *testing.T) {
	provider := &teststubs.StubProvider{Payload: samplePayload("A")}
	p := New(provider, nil, nil, nil, time.Minute)
	_ = p.fetchOnce(context.Background())

	provider.Err = errors.New("down")
	for i := 0; i < 3; i++ {
		_ = p.fetchOnce(context.Background())
	}
	if p.Status().IsReady() {
		t.Fatalf("expected not ready after three failures")
	}
}

func TestPollerLogsOnErrorAndSuccess(t *testing.T) {
	provider := &teststubs.StubProvider{Err: errors.New("fail")}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(provider, &teststubs.StubSink{}, logger, nil, time.Second)
	_ = p.fetchOnce(context.Background())

	provider.Err = nil
	provider.Payload = samplePayload("A")
	_ = p.fetchOnce(context.Background())
}

func TestPollerNilSinkDoesNotPanic(t *testing.T) {
	p := New(&teststubs.StubProvider{Payload: samplePayload("A")}, nil, nil, nil, time.Minute)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

// A slow scheduled fetch finishing after a faster manual refresh must not
// overwrite the newer result.
func TestOverlappingRefreshesLastStartedWins(t *testing.T) {
	release := make(chan struct{})
	provider := &teststubs.StubProvider{
		Fn: func(ctx context.Context, call int32) (stats.Payload, error) {
			if call == 1 {
				<-release
				return samplePayload("Stale"), nil
			}
			return samplePayload("Fresh"), nil
		},
	}
	controller := dashboard.NewController(nil, nil)
	p := New(provider, controller, nil, nil, time.Hour)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.Refresh(context.Background())
	}()
	for provider.Calls.Load() < 1 {
		time.Sleep(time.Millisecond)
	}

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	close(release)
	wg.Wait()

	snap := controller.Snapshot()
	if len(snap.Rows) != 1 || snap.Rows[0].Name != "Fresh" {
		t.Fatalf("expected newest fetch to win, got %+v", snap.Rows)
	}
}
