package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
)

const stopTimeout = 2 * time.Second

// Run starts the poller and the Bubble Tea program, and stops the poller
// when the program exits or ctx is cancelled.
func Run(opts Options) error {
	if opts.Source == nil {
		return errors.New("tui: source is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := opts.Source.Subscribe(func(s dashboard.State) {
		p.Send(stateMsg(s))
	})
	defer unsubscribe()

	if opts.Poller != nil {
		opts.Poller.Start(ctx)
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()
			if err := opts.Poller.Stop(stopCtx); err != nil {
				logging.Warn(opts.Logger, "poller stop failed", "error", err)
			}
		}()
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return errors.Wrap(err, "run terminal ui")
}
