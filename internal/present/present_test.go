package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/teams"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/testutil"
)

func sampleTable() *leaders.CategoryTable {
	table := leaders.NewCategoryTable()
	table.Add("Points",
		"Jayson Tatum (BOS) [Q3 5:32]: 31 ||| https://img/1.png",
		"LeBron James (LAL): 28 ||| https://img/2.png",
		"Anthony Davis (LAL): 35 ||| ",
	)
	table.Add("Assists", "LeBron James (LAL): 11 ||| https://img/2.png")
	return table
}

func readyState(t *testing.T) dashboard.State {
	t.Helper()
	s := dashboard.Update(dashboard.Initial(), dashboard.FetchSucceeded{
		Seq:     1,
		Payload: stats.Success(sampleTable(), []games.Snapshot{{ID: "g1", Status: games.StatusLive, Period: 3, GameClock: "PT05M32.00S"}}),
		At:      testutil.Tipoff,
	})
	require.Equal(t, dashboard.PhaseReady, s.Phase)
	return s
}

func TestTabsFollowTableOrder(t *testing.T) {
	tabs := Tabs(sampleTable())
	require.Len(t, tabs, 3)
	assert.Equal(t, "Points", tabs[0].Key)
	assert.Equal(t, "POINTS", tabs[0].Label)
	assert.Equal(t, "Assists", tabs[1].Key)
	assert.Equal(t, AllStatsTab, tabs[2].Key)
	assert.True(t, tabs[2].Composite)
}

func TestCategoryKeepsNativeOrderUntilSorted(t *testing.T) {
	view := BuildCategory(sampleTable(), "Points", leaders.SortState{})
	require.Len(t, view.Leaders, 3)
	assert.Equal(t, "Jayson Tatum", view.Leaders[0].PlayerName)
	assert.Equal(t, 1, view.Leaders[0].Rank)
	assert.True(t, view.Leaders[0].Live)
	assert.Equal(t, "Q3 5:32", view.Leaders[0].LiveStatus)
	assert.Equal(t, "PTS", view.Leaders[0].Suffix)
	assert.Equal(t, teams.LogoURL("BOS"), view.Leaders[0].TeamLogoURL)
	assert.False(t, view.Leaders[1].Live)
	assert.Empty(t, view.Leaders[2].ImageURL)
	assert.Empty(t, view.Indicator)

	sorted := BuildCategory(sampleTable(), "Points", leaders.SortState{}.Request(leaders.ColumnPoints))
	assert.Equal(t, "Anthony Davis", sorted.Leaders[0].PlayerName)
	assert.Equal(t, 3, sorted.Leaders[0].Rank)
	assert.Equal(t, " ↓", sorted.Indicator)
}

func TestCategoryIgnoresSortForOtherColumn(t *testing.T) {
	view := BuildCategory(sampleTable(), "Points", leaders.SortState{}.Request(leaders.ColumnAssists))
	assert.Equal(t, "Jayson Tatum", view.Leaders[0].PlayerName)
}

func TestSortsAreIndependentPerTab(t *testing.T) {
	var sorts Sorts
	sorts = sorts.Request(AllStatsTab, leaders.ColumnPoints)
	next := sorts.Request("Points", leaders.ColumnPoints)
	next = next.Request(AllStatsTab, leaders.ColumnPoints)

	assert.Equal(t, leaders.DirectionDescending, sorts.Get(AllStatsTab).Direction)
	assert.Equal(t, leaders.DirectionAscending, next.Get(AllStatsTab).Direction)
	assert.Equal(t, leaders.DirectionDescending, next.Get("Points").Direction)
	assert.False(t, next.Get("Assists").Active())
}

func TestCompositeSortsAndFillsSentinels(t *testing.T) {
	rows := leaders.Merge(sampleTable()).Rows
	cols := leaders.ColumnsFor(sampleTable())

	view := BuildComposite(rows, leaders.SortState{}, cols)
	require.Len(t, view.Headers, 2)
	assert.Equal(t, "PTS", view.Headers[0].Label)
	assert.Equal(t, "Jayson Tatum", view.Rows[0].Name)
	assert.Equal(t, []string{"31", "-"}, view.Rows[0].Cells)

	state := leaders.SortState{}.Request(leaders.ColumnAssists)
	view = BuildComposite(rows, state, cols)
	assert.Equal(t, " ↓", view.Headers[1].Indicator)
	assert.Empty(t, view.Headers[0].Indicator)
	assert.Equal(t, "LeBron James", view.Rows[0].Name)
	assert.Equal(t, "Jayson Tatum", view.Rows[1].Name)
}

func TestScoreboard(t *testing.T) {
	empty := BuildScoreboard(nil)
	assert.Equal(t, ScoreboardEmptyText, empty.EmptyText)
	assert.Empty(t, empty.Games)

	board := BuildScoreboard([]games.Snapshot{
		{
			ID: "g1", Status: games.StatusLive, Period: 5, GameClock: "PT01M05.00S",
			HomeTeam: teams.Team{Tricode: "BOS", City: "Boston", Name: "Celtics", Score: 110, InBonus: true},
			AwayTeam: teams.Team{Tricode: "LAL", City: "Los Angeles", Name: "Lakers", Score: 108},
		},
		{ID: "g2", Status: games.StatusScheduled, StatusText: "7:30 pm ET"},
	})
	require.Len(t, board.Games, 2)
	assert.True(t, board.AnyLive)

	card := board.Games[0]
	assert.Equal(t, "OT1", card.Status)
	assert.Equal(t, "1:05", card.Clock)
	assert.True(t, card.Home.IsLeading)
	assert.False(t, card.Away.IsLeading)
	assert.True(t, card.Home.InBonus)
	assert.Equal(t, "Boston Celtics", card.Home.Name)

	assert.Equal(t, "7:30 pm ET", board.Games[1].Status)
	assert.Empty(t, board.Games[1].Clock)
}

func TestBuildReadyView(t *testing.T) {
	state := readyState(t)

	view := Build(state, "all stats", Sorts{})
	assert.Equal(t, "ready", view.Phase)
	assert.Equal(t, AllStatsTab, view.ActiveTab)
	require.NotNil(t, view.Composite)
	assert.Nil(t, view.Category)
	assert.Equal(t, testutil.TipoffText, view.UpdatedAt)

	view = Build(state, "nope", Sorts{})
	assert.Equal(t, "Points", view.ActiveTab)
	require.NotNil(t, view.Category)
	assert.Len(t, view.Scoreboard.Games, 1)
}

func TestBuildEmptyView(t *testing.T) {
	state := dashboard.Update(dashboard.Initial(), dashboard.FetchSucceeded{
		Seq:     1,
		Payload: stats.Degraded("No player statistics available yet", nil),
	})
	view := Build(state, "", nil)
	assert.Equal(t, "empty", view.Phase)
	assert.Equal(t, "No player statistics available yet", view.Error)
	assert.Empty(t, view.Tabs)
	assert.Nil(t, view.Category)
	assert.Nil(t, view.Composite)
}

func TestBuildLoadingView(t *testing.T) {
	view := Build(dashboard.Initial(), "", nil)
	assert.True(t, view.Loading)
	assert.Equal(t, ScoreboardEmptyText, view.Scoreboard.EmptyText)
}
