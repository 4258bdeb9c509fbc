package games

import (
	"strconv"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/teams"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/timeutil"
)

// Status is the live feed's numeric game state.
type Status int

const (
	StatusScheduled Status = 1
	StatusLive      Status = 2
	StatusFinal     Status = 3
)

const defaultRegulationPeriods = 4

// Snapshot is one game as reported by the live score feed.
type Snapshot struct {
	ID                string     `json:"gameId"`
	HomeTeam          teams.Team `json:"homeTeam"`
	AwayTeam          teams.Team `json:"awayTeam"`
	Status            Status     `json:"gameStatus"`
	StatusText        string     `json:"gameStatusText"`
	Period            int        `json:"period"`
	GameClock         string     `json:"gameClock"`
	RegulationPeriods int        `json:"regulationPeriods"`
}

// IsLive reports whether the game is in progress.
func (g Snapshot) IsLive() bool {
	return g.Status == StatusLive
}

// HasStarted reports whether box scores can exist for the game.
func (g Snapshot) HasStarted() bool {
	return g.Status == StatusLive || g.Status == StatusFinal
}

// StatusLabel is the short state shown on a score card: the scheduled tip
// text, Q1-Q4 / OT1.. while live, or Final.
func (g Snapshot) StatusLabel() string {
	switch g.Status {
	case StatusScheduled:
		return g.StatusText
	case StatusLive:
		regulation := g.RegulationPeriods
		if regulation <= 0 {
			regulation = defaultRegulationPeriods
		}
		if g.Period > regulation {
			return "OT" + strconv.Itoa(g.Period-regulation)
		}
		return "Q" + strconv.Itoa(g.Period)
	default:
		return "Final"
	}
}

// Clock formats the ISO game clock ("PT08M35.00S" -> "8:35"). Unparseable
// clocks are returned unchanged.
func (g Snapshot) Clock() string {
	return FormatClock(g.GameClock)
}

// Leader returns the leading side's tricode, or "" when tied.
func (g Snapshot) Leader() string {
	switch {
	case g.HomeTeam.Score > g.AwayTeam.Score:
		return g.HomeTeam.Tricode
	case g.AwayTeam.Score > g.HomeTeam.Score:
		return g.AwayTeam.Tricode
	default:
		return ""
	}
}

// FormatClock converts an ISO clock into M:SS.
func FormatClock(clock string) string {
	if clock == "" {
		return ""
	}
	d, err := timeutil.ParseISODuration(clock)
	if err != nil {
		return clock
	}
	return timeutil.FormatClock(d)
}

// AnyLive reports whether at least one game is in progress.
func AnyLive(snapshots []Snapshot) bool {
	for _, g := range snapshots {
		if g.IsLive() {
			return true
		}
	}
	return false
}

// FindByID returns the game with the given id.
func FindByID(snapshots []Snapshot, id string) (Snapshot, bool) {
	for _, g := range snapshots {
		if g.ID == id {
			return g, true
		}
	}
	return Snapshot{}, false
}
