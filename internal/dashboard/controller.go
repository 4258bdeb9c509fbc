package dashboard

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
)

// Recorder receives controller metrics.
type Recorder interface {
	RecordParseDiagnostics(count int)
	RecordStaleResult()
}

// Controller owns the current State and serializes transitions.
type Controller struct {
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	seq atomic.Uint64

	// dispatchMu orders transitions and their notifications.
	dispatchMu sync.Mutex

	mu    sync.RWMutex
	state State

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock stamps settled results with now instead of time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController returns a controller in the initial loading state.
func NewController(logger *slog.Logger, recorder Recorder, opts ...Option) *Controller {
	c := &Controller{
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
		state:    Initial(),
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Begin allocates the next request sequence and marks the fetch as started.
func (c *Controller) Begin() uint64 {
	seq := c.seq.Add(1)
	c.Dispatch(FetchStarted{Seq: seq})
	return seq
}

// Complete applies the outcome of request seq.
func (c *Controller) Complete(seq uint64, payload stats.Payload, err error) {
	if err != nil {
		c.Dispatch(FetchFailed{Seq: seq, Err: err, At: c.now()})
		return
	}
	c.Dispatch(FetchSucceeded{Seq: seq, Payload: payload, At: c.now()})
}

// Dispatch runs one transition and hands the new state to subscribers.
// Subscribers see states in the order they were produced and must not call
// Dispatch themselves.
func (c *Controller) Dispatch(ev Event) State {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	prev := c.state
	next := Update(prev, ev)
	c.state = next
	c.mu.Unlock()

	c.observe(ev, prev, next)
	c.notify(next)
	return next
}

func (c *Controller) observe(ev Event, prev, next State) {
	switch e := ev.(type) {
	case FetchSucceeded:
		if next.Seq != e.Seq {
			c.stale(e.Seq, prev.Seq)
			return
		}
		if n := len(next.Diagnostics); n > 0 {
			if c.recorder != nil {
				c.recorder.RecordParseDiagnostics(n)
			}
			for _, d := range next.Diagnostics {
				logging.Warn(c.logger, "skipped malformed leader line",
					logging.FieldCategory, d.Category,
					"index", d.Index,
					"error", d.Message(),
				)
			}
		}
		if next.Phase == PhaseEmpty {
			logging.Info(c.logger, "stats not available yet", logging.FieldPhase, next.Phase.String(), "message", next.Message, logging.FieldCount, len(next.Games))
		}
	case FetchFailed:
		if next.Seq != e.Seq {
			c.stale(e.Seq, prev.Seq)
		}
	}
}

func (c *Controller) stale(seq, applied uint64) {
	if c.recorder != nil {
		c.recorder.RecordStaleResult()
	}
	logging.Info(c.logger, "dropped stale fetch result", logging.FieldSeq, seq, "applied_seq", applied)
}

// Subscribe registers fn for every new state. The returned func unregisters it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) notify(s State) {
	c.subMu.Lock()
	fns := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
