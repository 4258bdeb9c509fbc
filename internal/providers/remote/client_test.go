package remote

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, status int, body string, inspect func(*http.Request)) *Client {
	t.Helper()
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if inspect != nil {
			inspect(req)
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})
	return NewClient(Config{BaseURL: "https://stats.example.com/", APIKey: "secret", HTTPClient: &http.Client{Transport: rt}})
}

func TestFetchStatsDecodesSuccess(t *testing.T) {
	var path, auth string
	body := `{
		"stats": {
			"Points": ["Jayson Tatum (BOS) [Final]: 31 ||| https://img/1.png"],
			"Assists": ["LeBron James (LAL) [Final]: 11 ||| "]
		},
		"games": [{"gameId": "0022300001", "gameStatus": 3, "homeTeam": {"teamTricode": "BOS", "score": 110}, "awayTeam": {"teamTricode": "LAL", "score": 102}}]
	}`
	c := newTestClient(t, http.StatusOK, body, func(req *http.Request) {
		path = req.URL.Path
		auth = req.Header.Get("Authorization")
	})

	payload, err := c.FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if path != "/api/stats" {
		t.Fatalf("expected /api/stats, got %s", path)
	}
	if auth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if got := payload.Stats.Categories(); len(got) != 2 || got[0] != "Points" || got[1] != "Assists" {
		t.Fatalf("expected wire category order, got %v", got)
	}
	if len(payload.Games) != 1 || payload.Games[0].HomeTeam.Score != 110 {
		t.Fatalf("unexpected games %+v", payload.Games)
	}
	if err := payload.Empty(); err != nil {
		t.Fatalf("expected stats present, got %v", err)
	}
}

func TestFetchStatsDegradedPayload(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"stats": {}, "games": [], "message": "No player statistics available yet"}`, nil)
	payload, err := c.FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	emptyErr := payload.Empty()
	if !errors.Is(emptyErr, stats.ErrUpstreamEmpty) {
		t.Fatalf("expected upstream empty, got %v", emptyErr)
	}
	if !payload.HasGames() {
		t.Fatalf("expected empty games array to be kept")
	}
}

func TestFetchStatsMissingGamesStaysNil(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"message": "later"}`, nil)
	payload, err := c.FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if payload.HasGames() {
		t.Fatalf("expected no games array")
	}
}

func TestFetchStatsErrorFieldIsFetchError(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"error": "boom", "games": []}`, nil)
	_, err := c.FetchStats(context.Background())
	fe, ok := providers.AsFetchError(err)
	if !ok || fe.Message != "boom" {
		t.Fatalf("expected fetch error with upstream message, got %v", err)
	}
}

func TestFetchStatsServerError(t *testing.T) {
	c := newTestClient(t, http.StatusInternalServerError, `{"error": "Failed to fetch stats"}`, nil)
	_, err := c.FetchStats(context.Background())
	if !errors.Is(err, providers.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if providers.Retryable(err) != true {
		t.Fatalf("expected 5xx to be retryable")
	}
}

func TestFetchStatsMalformedBody(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"stats": ["not", "an", "object"]}`, nil)
	_, err := c.FetchStats(context.Background())
	if _, ok := providers.AsFetchError(err); !ok {
		t.Fatalf("expected fetch error for bad shape, got %v", err)
	}
}

func TestNameAndDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.Name() != "remote" {
		t.Fatalf("unexpected name %s", c.Name())
	}
	if c.baseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.baseURL)
	}
}
