package nbalive

import "github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"

const providerName = "nbalive"

type scoreboardResponse struct {
	Scoreboard struct {
		GameDate string           `json:"gameDate"`
		Games    []games.Snapshot `json:"games"`
	} `json:"scoreboard"`
}

type boxscoreResponse struct {
	Game struct {
		GameID   string       `json:"gameId"`
		HomeTeam boxscoreTeam `json:"homeTeam"`
		AwayTeam boxscoreTeam `json:"awayTeam"`
	} `json:"game"`
}

type boxscoreTeam struct {
	TeamTricode string           `json:"teamTricode"`
	Players     []boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	PersonID   int                `json:"personId"`
	Name       string             `json:"name"`
	Statistics boxscoreStatistics `json:"statistics"`
}

type boxscoreStatistics struct {
	Minutes                string `json:"minutes"`
	Points                 int    `json:"points"`
	ReboundsTotal          int    `json:"reboundsTotal"`
	Assists                int    `json:"assists"`
	Steals                 int    `json:"steals"`
	Blocks                 int    `json:"blocks"`
	Turnovers              int    `json:"turnovers"`
	FieldGoalsMade         int    `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int    `json:"fieldGoalsAttempted"`
	ThreePointersMade      int    `json:"threePointersMade"`
	ThreePointersAttempted int    `json:"threePointersAttempted"`
	FreeThrowsMade         int    `json:"freeThrowsMade"`
	FreeThrowsAttempted    int    `json:"freeThrowsAttempted"`
}
