package present

import (
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/teams"
)

// ScoreboardEmptyText is shown before any game has been received.
const ScoreboardEmptyText = "Loading live scores..."

// TeamLine is one side of a score card.
type TeamLine struct {
	Tricode   string `json:"tricode"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	InBonus   bool   `json:"inBonus"`
	Timeouts  int    `json:"timeoutsRemaining"`
	LogoURL   string `json:"logoUrl,omitempty"`
	IsLeading bool   `json:"isLeading"`
}

// ScoreCard is one game on the scoreboard.
type ScoreCard struct {
	GameID string   `json:"gameId"`
	Status string   `json:"status"`
	Clock  string   `json:"clock,omitempty"`
	Live   bool     `json:"live"`
	Away   TeamLine `json:"away"`
	Home   TeamLine `json:"home"`
}

// ScoreboardView lists score cards in feed order.
type ScoreboardView struct {
	Games     []ScoreCard `json:"games"`
	EmptyText string      `json:"emptyText,omitempty"`
	AnyLive   bool        `json:"anyLive"`
}

// BuildScoreboard formats the games for display.
func BuildScoreboard(snapshots []games.Snapshot) ScoreboardView {
	view := ScoreboardView{Games: make([]ScoreCard, 0, len(snapshots))}
	if len(snapshots) == 0 {
		view.EmptyText = ScoreboardEmptyText
		return view
	}
	for _, g := range snapshots {
		view.Games = append(view.Games, BuildScoreCard(g))
	}
	view.AnyLive = games.AnyLive(snapshots)
	return view
}

// BuildScoreCard formats one game.
func BuildScoreCard(g games.Snapshot) ScoreCard {
	card := ScoreCard{
		GameID: g.ID,
		Status: g.StatusLabel(),
		Live:   g.IsLive(),
		Away:   teamLine(g.AwayTeam, g.AwayTeam.Score > g.HomeTeam.Score),
		Home:   teamLine(g.HomeTeam, g.HomeTeam.Score > g.AwayTeam.Score),
	}
	if g.IsLive() {
		card.Clock = g.Clock()
	}
	return card
}

func teamLine(t teams.Team, leading bool) TeamLine {
	return TeamLine{
		Tricode:   t.Tricode,
		Name:      t.FullName(),
		Score:     t.Score,
		InBonus:   bool(t.InBonus),
		Timeouts:  t.TimeoutsRemaining,
		LogoURL:   t.LogoURL(),
		IsLeading: leading,
	}
}
