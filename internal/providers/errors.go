package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrProviderUnavailable is returned when no upstream is wired.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrFetch matches every FetchError.
	ErrFetch = errors.New("stats fetch failed")
)

// FetchError is a transport failure or a non-success upstream response.
type FetchError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = ErrFetch.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.Provider, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// Unwrap exposes the transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetch) match.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// AsFetchError unwraps err into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// Is lets a rate limit count as a fetch failure.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrFetch
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Retryable reports whether another attempt could succeed. Client errors
// other than 408 and 429 are final.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrProviderUnavailable) || errors.Is(err, context.Canceled) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if fe, ok := AsFetchError(err); ok && fe.StatusCode >= 400 && fe.StatusCode < 500 {
		return fe.StatusCode == 408
	}
	return true
}
