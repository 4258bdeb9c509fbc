// Package aggregate ranks per-game player box scores into the leader
// category table served to the dashboard.
package aggregate

import (
	"math"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/players"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/timeutil"
)

const (
	DefaultTopN        = 30
	DefaultMinAttempts = 3
)

// Options tunes ranking. Zero values fall back to the defaults.
type Options struct {
	TopN        int
	MinAttempts int
}

func (o Options) normalized() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.MinAttempts <= 0 {
		o.MinAttempts = DefaultMinAttempts
	}
	return o
}

type category struct {
	name string
	// rank is the sort key; higher is better.
	rank func(players.StatLine) float64
	// eligible filters lines before ranking. nil admits every line.
	eligible func(players.StatLine, Options) bool
	value    func(players.StatLine) string
}

func counting(name string, field func(players.StatLine) int) category {
	return category{
		name:  name,
		rank:  func(s players.StatLine) float64 { return float64(field(s)) },
		value: func(s players.StatLine) string { return strconv.Itoa(field(s)) },
	}
}

func shooting(name string, made, attempts func(players.StatLine) int) category {
	return category{
		name: name,
		rank: func(s players.StatLine) float64 { return Percentage(made(s), attempts(s)) },
		eligible: func(s players.StatLine, o Options) bool {
			return attempts(s) >= o.MinAttempts
		},
		value: func(s players.StatLine) string {
			return FormatPercentage(made(s), attempts(s))
		},
	}
}

var categories = []category{
	counting(leaders.CategoryPoints, func(s players.StatLine) int { return s.Points }),
	counting(leaders.CategoryRebounds, func(s players.StatLine) int { return s.Rebounds }),
	counting(leaders.CategoryAssists, func(s players.StatLine) int { return s.Assists }),
	counting(leaders.CategorySteals, func(s players.StatLine) int { return s.Steals }),
	counting(leaders.CategoryBlocks, func(s players.StatLine) int { return s.Blocks }),
	{
		name:  leaders.CategoryMinutes,
		rank:  func(s players.StatLine) float64 { return s.Minutes.Minutes() },
		value: func(s players.StatLine) string { return timeutil.FormatClock(s.Minutes) },
	},
	counting(leaders.CategoryTurnovers, func(s players.StatLine) int { return s.Turnovers }),
	shooting(leaders.CategoryFieldGoalPct,
		func(s players.StatLine) int { return s.FGM },
		func(s players.StatLine) int { return s.FGA }),
	shooting(leaders.CategoryThreePointPct,
		func(s players.StatLine) int { return s.TPM },
		func(s players.StatLine) int { return s.TPA }),
	shooting(leaders.CategoryFreeThrowPct,
		func(s players.StatLine) int { return s.FTM },
		func(s players.StatLine) int { return s.FTA }),
}

// Categories lists the category names Build emits, in order.
func Categories() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// ErrNoPlayers is returned when no line has any minutes played.
var ErrNoPlayers = errors.New("no player statistics")

// Build ranks lines into a category table. Lines without minutes are
// ignored. Every category is present, possibly with no lines.
func Build(lines []players.StatLine, opts Options) (*leaders.CategoryTable, error) {
	opts = opts.normalized()

	played := make([]players.StatLine, 0, len(lines))
	for _, l := range lines {
		if l.Played() {
			played = append(played, l)
		}
	}
	if len(played) == 0 {
		return nil, ErrNoPlayers
	}

	table := leaders.NewCategoryTable()
	for _, c := range categories {
		table.Add(c.name, rank(played, c, opts)...)
	}
	return table, nil
}

func rank(lines []players.StatLine, c category, opts Options) []string {
	pool := make([]players.StatLine, 0, len(lines))
	for _, l := range lines {
		if c.eligible == nil || c.eligible(l, opts) {
			pool = append(pool, l)
		}
	}
	top := TopN(pool, opts.TopN, c.rank)

	out := make([]string, 0, len(top))
	for _, l := range top {
		out = append(out, leaders.FormatLine(leaders.Line{
			PlayerName: l.Name,
			TeamCode:   l.TeamTricode,
			Value:      c.value(l),
			ImageURL:   l.HeadshotURL(),
			LiveStatus: l.GameStatus,
		}))
	}
	return out
}

// TopN returns the n best lines by key, descending, keeping every line
// tied with the n-th. Equal keys keep input order.
func TopN(lines []players.StatLine, n int, key func(players.StatLine) float64) []players.StatLine {
	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b players.StatLine) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		}
		return 0
	})
	if n <= 0 || len(sorted) <= n {
		return sorted
	}
	cut := key(sorted[n-1])
	end := n
	for end < len(sorted) && key(sorted[end]) == cut {
		end++
	}
	return sorted[:end]
}

// Percentage is made/attempts*100 rounded half to even at one decimal, 0
// without attempts.
func Percentage(made, attempts int) float64 {
	if attempts <= 0 {
		return 0
	}
	return math.RoundToEven(float64(made)/float64(attempts)*1000) / 10
}

// FormatPercentage renders "55.6% (5/9)".
func FormatPercentage(made, attempts int) string {
	return strconv.FormatFloat(Percentage(made, attempts), 'f', 1, 64) +
		"% (" + strconv.Itoa(made) + "/" + strconv.Itoa(attempts) + ")"
}

// GameStatusTag is the status written into leader lines for a game.
func GameStatusTag(final bool, period int, statusText string) string {
	if final {
		return leaders.DefaultLiveStatus
	}
	return "Q" + strconv.Itoa(period) + " " + statusText
}
