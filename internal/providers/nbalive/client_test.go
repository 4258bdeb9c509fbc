package nbalive

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const scoreboardBody = `{
	"scoreboard": {
		"gameDate": "2024-03-01",
		"games": [
			{
				"gameId": "0022300001", "gameStatus": 3, "gameStatusText": "Final", "period": 4, "gameClock": "", "regulationPeriods": 4,
				"homeTeam": {"teamId": 1610612738, "teamName": "Celtics", "teamCity": "Boston", "teamTricode": "BOS", "score": 110, "inBonus": "1", "timeoutsRemaining": 2},
				"awayTeam": {"teamId": 1610612747, "teamName": "Lakers", "teamCity": "Los Angeles", "teamTricode": "LAL", "score": 102, "inBonus": null, "timeoutsRemaining": 0}
			},
			{
				"gameId": "0022300002", "gameStatus": 2, "gameStatusText": "5:32", "period": 3, "gameClock": "PT05M32.00S", "regulationPeriods": 4,
				"homeTeam": {"teamId": 1610612744, "teamTricode": "GSW", "score": 70},
				"awayTeam": {"teamId": 1610612748, "teamTricode": "MIA", "score": 66}
			},
			{
				"gameId": "0022300003", "gameStatus": 1, "gameStatusText": "7:30 pm ET", "period": 0,
				"homeTeam": {"teamTricode": "NYK"}, "awayTeam": {"teamTricode": "BKN"}
			}
		]
	}
}`

const finalBox = `{
	"game": {
		"gameId": "0022300001",
		"homeTeam": {"teamTricode": "BOS", "players": [
			{"personId": 1628369, "name": "Jayson Tatum", "statistics": {"minutes": "PT36M12.00S", "points": 31, "reboundsTotal": 8, "assists": 5, "fieldGoalsMade": 11, "fieldGoalsAttempted": 20, "threePointersMade": 4, "threePointersAttempted": 9, "freeThrowsMade": 5, "freeThrowsAttempted": 6}},
			{"personId": 999, "name": "Bench Guy", "statistics": {"minutes": "PT00M00.00S", "points": 0}}
		]},
		"awayTeam": {"teamTricode": "LAL", "players": [
			{"personId": 2544, "name": "LeBron James", "statistics": {"minutes": "PT38M01.00S", "points": 28, "assists": 11, "fieldGoalsMade": 10, "fieldGoalsAttempted": 18}}
		]}
	}
}`

const liveBox = `{
	"game": {
		"gameId": "0022300002",
		"homeTeam": {"teamTricode": "GSW", "players": [
			{"personId": 201939, "name": "Stephen Curry", "statistics": {"minutes": "PT25M00.00S", "points": 22, "threePointersMade": 6, "threePointersAttempted": 10}}
		]},
		"awayTeam": {"teamTricode": "MIA", "players": []}
	}
}`

type fakeCDN struct {
	mu     sync.Mutex
	paths  []string
	bodies map[string]string
	status map[string]int
}

func (f *fakeCDN) client() *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		f.mu.Lock()
		f.paths = append(f.paths, req.URL.Path)
		f.mu.Unlock()

		status := http.StatusOK
		if s, ok := f.status[req.URL.Path]; ok {
			status = s
		}
		body, ok := f.bodies[req.URL.Path]
		if !ok {
			status = http.StatusNotFound
			body = "not found"
		}
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header)}, nil
	})}
}

func (f *fakeCDN) requested(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.paths {
		if p == path {
			return true
		}
	}
	return false
}

func newFake() *fakeCDN {
	return &fakeCDN{
		bodies: map[string]string{
			"/live/scoreboard/todaysScoreboard_00.json": scoreboardBody,
			"/live/boxscore/boxscore_0022300001.json":   finalBox,
			"/live/boxscore/boxscore_0022300002.json":   liveBox,
		},
		status: map[string]int{},
	}
}

func newClient(f *fakeCDN) *Client {
	return NewClient(Config{BaseURL: "https://cdn.example.com/live/", HTTPClient: f.client(), Concurrency: 2})
}

func TestFetchStatsAggregatesStartedGames(t *testing.T) {
	fake := newFake()
	payload, err := newClient(fake).FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if fake.requested("/live/boxscore/boxscore_0022300003.json") {
		t.Fatalf("scheduled game box score should not be fetched")
	}
	if len(payload.Games) != 3 {
		t.Fatalf("expected all scoreboard games, got %d", len(payload.Games))
	}
	if !bool(payload.Games[0].HomeTeam.InBonus) || bool(payload.Games[0].AwayTeam.InBonus) {
		t.Fatalf("unexpected bonus decoding %+v", payload.Games[0])
	}

	points := payload.Stats.Lines(leaders.CategoryPoints)
	if len(points) != 3 {
		t.Fatalf("expected 3 players with minutes, got %v", points)
	}
	top, err := leaders.Parse(points[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if top.PlayerName != "Jayson Tatum" || top.Value != "31" || top.LiveStatus != "Final" {
		t.Fatalf("unexpected top scorer %+v", top)
	}

	curry, err := leaders.Parse(points[2])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if curry.LiveStatus != "Q3 5:32" || curry.TeamCode != "GSW" {
		t.Fatalf("unexpected live line %+v", curry)
	}

	threes := payload.Stats.Lines(leaders.CategoryThreePointPct)
	if len(threes) != 2 || !strings.Contains(threes[0], "60.0% (6/10)") {
		t.Fatalf("unexpected 3P%% leaders %v", threes)
	}
}

func TestFetchStatsNoStartedGames(t *testing.T) {
	fake := newFake()
	fake.bodies["/live/scoreboard/todaysScoreboard_00.json"] = `{"scoreboard": {"games": [{"gameId": "g", "gameStatus": 1}]}}`

	payload, err := newClient(fake).FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if payload.Message != MessageNoActiveGames {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	if len(payload.Games) != 1 {
		t.Fatalf("expected games to be kept, got %d", len(payload.Games))
	}
	if !errors.Is(payload.Empty(), stats.ErrUpstreamEmpty) {
		t.Fatalf("expected degraded payload")
	}
}

func TestFetchStatsSkipsFailedBoxscore(t *testing.T) {
	fake := newFake()
	fake.status["/live/boxscore/boxscore_0022300001.json"] = http.StatusInternalServerError

	payload, err := newClient(fake).FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	points := payload.Stats.Lines(leaders.CategoryPoints)
	if len(points) != 1 || !strings.HasPrefix(points[0], "Stephen Curry (GSW)") {
		t.Fatalf("expected only the live game's player, got %v", points)
	}
}

func TestFetchStatsNoPlayers(t *testing.T) {
	fake := newFake()
	fake.status["/live/boxscore/boxscore_0022300001.json"] = http.StatusNotFound
	fake.status["/live/boxscore/boxscore_0022300002.json"] = http.StatusNotFound

	payload, err := newClient(fake).FetchStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if payload.Message != MessageNoPlayerStats {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}

func TestFetchStatsScoreboardFailure(t *testing.T) {
	fake := newFake()
	fake.status["/live/scoreboard/todaysScoreboard_00.json"] = http.StatusBadGateway

	_, err := newClient(fake).FetchStats(context.Background())
	if !errors.Is(err, providers.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetchStatsScoreboardGarbage(t *testing.T) {
	fake := newFake()
	fake.bodies["/live/scoreboard/todaysScoreboard_00.json"] = `<html>`

	_, err := newClient(fake).FetchStats(context.Background())
	if _, ok := providers.AsFetchError(err); !ok {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.baseURL != defaultBaseURL || c.concurrency != defaultConcurrency {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.Name() != "nbalive" {
		t.Fatalf("unexpected name %s", c.Name())
	}
}
