package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
)

// StubProvider is a test double for providers.StatsProvider.
type StubProvider struct {
	Payload stats.Payload
	Err     error
	// Fn, when set, replaces Payload/Err and receives the 1-based call number.
	Fn     func(ctx context.Context, call int32) (stats.Payload, error)
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchStats returns the configured payload and error while tracking calls.
func (s *StubProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	call := s.Calls.Add(1)
	if s.Fn != nil {
		return s.Fn(ctx, call)
	}
	return s.Payload, s.Err
}

// Completion is one result handed to a StubSink.
type Completion struct {
	Seq     uint64
	Payload stats.Payload
	Err     error
}

// StubSink is a test double for poller.Sink.
type StubSink struct {
	mu        sync.Mutex
	seq       uint64
	Completed []Completion
	// Done, when set, receives every completion.
	Done chan Completion
}

// Begin hands out increasing sequence numbers.
func (s *StubSink) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Complete records the result.
func (s *StubSink) Complete(seq uint64, payload stats.Payload, err error) {
	c := Completion{Seq: seq, Payload: payload, Err: err}
	s.mu.Lock()
	s.Completed = append(s.Completed, c)
	s.mu.Unlock()
	if s.Done != nil {
		s.Done <- c
	}
}

// Results returns a copy of the recorded completions.
func (s *StubSink) Results() []Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Completion(nil), s.Completed...)
}
