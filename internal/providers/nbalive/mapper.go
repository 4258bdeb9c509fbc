package nbalive

import (
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/aggregate"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/players"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/timeutil"
)

const zeroMinutes = "PT00M00.00S"

// mapBoxscore flattens both rosters into stat lines. Tricodes come from the
// scoreboard game so they match the score cards. Players who have not
// played are dropped.
func mapBoxscore(game games.Snapshot, box boxscoreResponse) []players.StatLine {
	status := aggregate.GameStatusTag(game.Status == games.StatusFinal, game.Period, game.StatusText)

	home := tricodeOr(game.HomeTeam.Tricode, box.Game.HomeTeam.TeamTricode)
	away := tricodeOr(game.AwayTeam.Tricode, box.Game.AwayTeam.TeamTricode)

	lines := make([]players.StatLine, 0, len(box.Game.HomeTeam.Players)+len(box.Game.AwayTeam.Players))
	lines = appendPlayers(lines, box.Game.HomeTeam.Players, home, status)
	lines = appendPlayers(lines, box.Game.AwayTeam.Players, away, status)
	return lines
}

func appendPlayers(dst []players.StatLine, roster []boxscorePlayer, tricode, status string) []players.StatLine {
	for _, p := range roster {
		if p.Statistics.Minutes == "" || p.Statistics.Minutes == zeroMinutes {
			continue
		}
		minutes, err := timeutil.ParseISODuration(p.Statistics.Minutes)
		if err != nil || minutes <= 0 {
			continue
		}
		s := p.Statistics
		dst = append(dst, players.StatLine{
			PersonID:    p.PersonID,
			Name:        p.Name,
			TeamTricode: tricode,
			GameStatus:  status,
			Minutes:     minutes,
			Points:      s.Points,
			Rebounds:    s.ReboundsTotal,
			Assists:     s.Assists,
			Steals:      s.Steals,
			Blocks:      s.Blocks,
			Turnovers:   s.Turnovers,
			FGM:         s.FieldGoalsMade,
			FGA:         s.FieldGoalsAttempted,
			TPM:         s.ThreePointersMade,
			TPA:         s.ThreePointersAttempted,
			FTM:         s.FreeThrowsMade,
			FTA:         s.FreeThrowsAttempted,
		})
	}
	return dst
}

func tricodeOr(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}
