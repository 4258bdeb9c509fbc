package testutil

import (
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/teams"
)

// SampleGame returns a live game fixture with the provided id.
func SampleGame(id string) games.Snapshot {
	return games.Snapshot{
		ID:         id,
		HomeTeam:   teams.Team{ID: 1610612738, City: "Boston", Name: "Celtics", Tricode: "BOS", Score: 54},
		AwayTeam:   teams.Team{ID: 1610612747, City: "Los Angeles", Name: "Lakers", Tricode: "LAL", Score: 50},
		Status:     games.StatusLive,
		StatusText: "Q2 4:12",
		Period:     2,
		GameClock:  "PT04M12.00S",
	}
}

// SampleTable returns a two-category table with one shared player.
func SampleTable() *leaders.CategoryTable {
	table := leaders.NewCategoryTable()
	table.Add("Points",
		"Jayson Tatum (BOS) [Final]: 34 ||| https://cdn.example.com/tatum.png",
		"LeBron James (LAL) [Final]: 28 ||| https://cdn.example.com/lebron.png",
	)
	table.Add("Rebounds",
		"Anthony Davis (LAL) [Final]: 15 ||| https://cdn.example.com/ad.png",
		"Jayson Tatum (BOS) [Final]: 9 ||| https://cdn.example.com/tatum.png",
	)
	return table
}

// SamplePayload builds a success payload with the sample table and one game.
func SamplePayload(gameID string) stats.Payload {
	return stats.Success(SampleTable(), []games.Snapshot{SampleGame(gameID)})
}
