package testutil

import (
	"context"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
)

// GoodProvider returns the provided payload with no error.
type GoodProvider struct {
	Payload stats.Payload
}

func (p GoodProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	_ = ctx
	return p.Payload, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	_ = ctx
	return stats.Payload{}, p.Err
}

// EmptyProvider returns a degraded payload with no games.
type EmptyProvider struct {
	Message string
}

func (p EmptyProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	_ = ctx
	return stats.Degraded(p.Message, nil), nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	_ = ctx
	return stats.Payload{}, providers.ErrProviderUnavailable
}

// NotifyingProvider returns the payload and closes Notify on first fetch.
type NotifyingProvider struct {
	Payload stats.Payload
	Notify  chan struct{}
}

func (p *NotifyingProvider) FetchStats(ctx context.Context) (stats.Payload, error) {
	_ = ctx
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return p.Payload, nil
}
