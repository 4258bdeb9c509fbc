// Package remote reads the stats payload from another service's
// /api/stats endpoint.
package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers/upstream"
)

const (
	providerName   = "remote"
	defaultBaseURL = "http://localhost:3000"
	statsPath      = "/api/stats"
)

// Config controls how the client reaches the stats endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches stats payloads over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient upstream.Doer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    upstream.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		apiKey:     cfg.APIKey,
		httpClient: upstream.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchStats retrieves the current payload. A body with "error" set is a
// fetch failure even on a 2xx status. A missing games array stays nil so the
// dashboard keeps the scores it already has.
func (c *Client) FetchStats(ctx context.Context) (stats.Payload, error) {
	var header http.Header
	if c.apiKey != "" {
		header = http.Header{"Authorization": []string{"Bearer " + c.apiKey}}
	}

	body, err := upstream.Get(ctx, c.httpClient, providerName, c.baseURL+statsPath, header)
	if err != nil {
		return stats.Payload{}, err
	}

	var payload stats.Payload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return stats.Payload{}, &providers.FetchError{
			Provider:   providerName,
			StatusCode: http.StatusOK,
			Message:    "decode payload",
			Err:        errors.Wrap(err, "decode stats payload"),
		}
	}
	if payload.Error != "" {
		return stats.Payload{}, &providers.FetchError{
			Provider:   providerName,
			StatusCode: http.StatusOK,
			Message:    payload.Error,
		}
	}
	return payload, nil
}
