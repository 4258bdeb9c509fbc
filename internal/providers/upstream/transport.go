// Package upstream holds the HTTP plumbing shared by the network-backed
// stats providers.
package upstream

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
)

const (
	// DefaultHTTPTimeout bounds a single upstream request.
	DefaultHTTPTimeout = 10 * time.Second

	maxErrorBody = 512
	maxBody      = 8 << 20
)

// Doer is the subset of *http.Client the providers use.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveHTTPClient returns client or a default one with timeout.
func ResolveHTTPClient(client *http.Client, timeout time.Duration) Doer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NormalizeBaseURL trims the trailing slash, falling back to def.
func NormalizeBaseURL(raw, def string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = def
	}
	return strings.TrimSuffix(raw, "/")
}

// Get performs a GET and returns the body of a 2xx response. Transport
// failures and non-2xx answers come back as *providers.FetchError, 429 as
// *providers.RateLimitError.
func Get(ctx context.Context, doer Doer, provider, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &providers.FetchError{Provider: provider, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := doer.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &providers.FetchError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.RateLimitError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    ErrorMessage(snippet),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := ErrorMessage(snippet)
		if msg == "" {
			msg = "unexpected status " + strconv.Itoa(resp.StatusCode)
		}
		return nil, &providers.FetchError{Provider: provider, StatusCode: resp.StatusCode, Message: msg}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &providers.FetchError{Provider: provider, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read body")}
	}
	return body, nil
}

// ErrorMessage pulls "error" or "message" out of a JSON error body, or
// returns the trimmed text.
func ErrorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, key := range []string{"error", "message"} {
			if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	return strings.TrimSpace(string(body))
}

// ParseRetryAfter accepts delta seconds or an HTTP date.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
