// Package fixture serves a fixed stats payload for local runs and tests.
package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/aggregate"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/players"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/teams"
)

const providerName = "fixture"

// Provider returns a deterministic payload built through the same
// aggregation as the live feed.
type Provider struct {
	opts aggregate.Options
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return providerName }

// FetchStats returns two games, one final and one in the third quarter,
// plus a scheduled game.
func (p *Provider) FetchStats(ctx context.Context) (stats.Payload, error) {
	if err := ctx.Err(); err != nil {
		return stats.Payload{}, err
	}

	snapshots := Games()
	table, err := aggregate.Build(Lines(), p.opts)
	if err != nil {
		return stats.Payload{}, err
	}
	return stats.Success(table, snapshots), nil
}

// Games is the fixture scoreboard.
func Games() []games.Snapshot {
	return []games.Snapshot{
		{
			ID:                "fixture-1",
			Status:            games.StatusFinal,
			StatusText:        "Final",
			Period:            4,
			RegulationPeriods: 4,
			HomeTeam:          team("BOS", "Boston", "Celtics", 112, false, 1),
			AwayTeam:          team("LAL", "Los Angeles", "Lakers", 104, false, 0),
		},
		{
			ID:                "fixture-2",
			Status:            games.StatusLive,
			StatusText:        "5:32",
			Period:            3,
			GameClock:         "PT05M32.00S",
			RegulationPeriods: 4,
			HomeTeam:          team("GSW", "Golden State", "Warriors", 78, true, 3),
			AwayTeam:          team("MIA", "Miami", "Heat", 81, false, 2),
		},
		{
			ID:                "fixture-3",
			Status:            games.StatusScheduled,
			StatusText:        "7:30 pm ET",
			RegulationPeriods: 4,
			HomeTeam:          team("NYK", "New York", "Knicks", 0, false, 7),
			AwayTeam:          team("DEN", "Denver", "Nuggets", 0, false, 7),
		},
	}
}

func team(tricode, city, name string, score int, bonus bool, timeouts int) teams.Team {
	id, _ := teams.IDFor(tricode)
	return teams.Team{
		ID:                id,
		Name:              name,
		City:              city,
		Tricode:           tricode,
		Score:             score,
		InBonus:           teams.Bonus(bonus),
		TimeoutsRemaining: timeouts,
	}
}

// Lines is the fixture box score for the started games.
func Lines() []players.StatLine {
	final := aggregate.GameStatusTag(true, 4, "Final")
	live := aggregate.GameStatusTag(false, 3, "5:32")
	return []players.StatLine{
		stat(1628369, "Jayson Tatum", "BOS", final, 37*time.Minute+12*time.Second, 34, 9, 5, 1, 1, 3, 12, 22, 4, 9, 6, 6),
		stat(1627759, "Jaylen Brown", "BOS", final, 35*time.Minute+40*time.Second, 24, 6, 3, 2, 0, 2, 9, 17, 2, 6, 4, 5),
		stat(2544, "LeBron James", "LAL", final, 36*time.Minute+5*time.Second, 27, 8, 11, 1, 1, 4, 10, 19, 2, 5, 5, 7),
		stat(203076, "Anthony Davis", "LAL", final, 38*time.Minute, 29, 14, 3, 1, 4, 2, 12, 20, 0, 1, 5, 6),
		stat(201939, "Stephen Curry", "GSW", live, 24*time.Minute+18*time.Second, 26, 3, 6, 2, 0, 3, 8, 15, 6, 11, 4, 4),
		stat(1626172, "Kevon Looney", "GSW", live, 18*time.Minute+2*time.Second, 6, 9, 2, 0, 1, 1, 3, 4, 0, 0, 0, 2),
		stat(1628389, "Bam Adebayo", "MIA", live, 26*time.Minute+30*time.Second, 18, 10, 4, 1, 2, 2, 7, 12, 0, 0, 4, 5),
		stat(202710, "Jimmy Butler", "MIA", live, 25*time.Minute+45*time.Second, 21, 5, 5, 3, 0, 1, 6, 11, 1, 2, 8, 9),
	}
}

func stat(id int, name, tricode, status string, minutes time.Duration, pts, reb, ast, stl, blk, to, fgm, fga, tpm, tpa, ftm, fta int) players.StatLine {
	return players.StatLine{
		PersonID: id, Name: name, TeamTricode: tricode, GameStatus: status, Minutes: minutes,
		Points: pts, Rebounds: reb, Assists: ast, Steals: stl, Blocks: blk, Turnovers: to,
		FGM: fgm, FGA: fga, TPM: tpm, TPA: tpa, FTM: ftm, FTA: fta,
	}
}
