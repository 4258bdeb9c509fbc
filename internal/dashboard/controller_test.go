package dashboard

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
)

type recorderStub struct {
	diagnostics atomic.Int32
	stale       atomic.Int32
}

func (r *recorderStub) RecordParseDiagnostics(count int) { r.diagnostics.Add(int32(count)) }
func (r *recorderStub) RecordStaleResult()               { r.stale.Add(1) }

func TestControllerLastCompletedWins(t *testing.T) {
	rec := &recorderStub{}
	c := NewController(nil, rec)

	slow := c.Begin()
	fast := c.Begin()
	require.Greater(t, fast, slow)

	c.Complete(fast, stats.Success(table("Fresh (X): 40 ||| "), nil), nil)
	c.Complete(slow, stats.Success(table("Stale (X): 10 ||| "), nil), nil)

	snap := c.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "Fresh", snap.Rows[0].Name)
	assert.Equal(t, int32(1), rec.stale.Load())
}

func TestControllerRecordsDiagnostics(t *testing.T) {
	rec := &recorderStub{}
	c := NewController(nil, rec)

	seq := c.Begin()
	c.Complete(seq, stats.Success(table("A (X): 1 ||| ", "junk", "also junk"), nil), nil)

	assert.Equal(t, int32(2), rec.diagnostics.Load())
	assert.Len(t, c.Snapshot().Diagnostics, 2)
}

func TestControllerFailure(t *testing.T) {
	c := NewController(nil, nil)
	seq := c.Begin()
	c.Complete(seq, stats.Payload{}, errors.New("down"))
	state := c.Snapshot()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, MessageFetchTryLater, state.Message)
}

func TestControllerSubscribe(t *testing.T) {
	c := NewController(nil, nil)

	var mu sync.Mutex
	var seen []Phase
	cancel := c.Subscribe(func(s State) {
		mu.Lock()
		seen = append(seen, s.Phase)
		mu.Unlock()
	})

	seq := c.Begin()
	c.Complete(seq, stats.Success(table("A (X): 1 ||| "), nil), nil)
	cancel()
	c.Dispatch(IntroCompleted{})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Phase{PhaseLoading, PhaseReady}, seen)
}

func TestControllerConcurrentCompletions(t *testing.T) {
	c := NewController(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := c.Begin()
			c.Complete(seq, stats.Success(table("A (X): 1 ||| "), nil), nil)
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, uint64(20), snap.Seq)
}

func TestControllerNotifiesInCompletionOrder(t *testing.T) {
	c := NewController(nil, nil)
	first := c.Begin()
	second := c.Begin()

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var seen []uint64
	c.Subscribe(func(s State) {
		if s.Loading() {
			return
		}
		if s.Seq == first {
			close(entered)
			<-release
		}
		mu.Lock()
		seen = append(seen, s.Seq)
		mu.Unlock()
	})

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		c.Complete(first, stats.Success(table("Old (X): 1 ||| "), nil), nil)
	}()
	<-entered

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		c.Complete(second, stats.Success(table("New (X): 2 ||| "), nil), nil)
	}()

	select {
	case <-secondDone:
		t.Fatal("second completion notified while the first was still being delivered")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-firstDone
	<-secondDone

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{first, second}, seen)
	assert.Equal(t, seen[len(seen)-1], c.Snapshot().Seq)
}
