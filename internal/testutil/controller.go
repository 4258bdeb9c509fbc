package testutil

import (
	"testing"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
)

// NewController returns a controller that has already applied payload,
// stamped at Tipoff.
func NewController(t *testing.T, payload stats.Payload) *dashboard.Controller {
	t.Helper()
	c := dashboard.NewController(nil, nil, dashboard.WithClock(NowAt(Tipoff)))
	c.Complete(c.Begin(), payload, nil)
	return c
}

// StaticState serves a fixed dashboard state.
type StaticState struct {
	State dashboard.State
}

func (s StaticState) Snapshot() dashboard.State {
	return s.State
}
