package present

import (
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/teams"
)

// LeaderCard is one ranked entry of a category tab.
type LeaderCard struct {
	Rank        int    `json:"rank"`
	PlayerName  string `json:"playerName"`
	TeamCode    string `json:"teamCode"`
	Value       string `json:"value"`
	Suffix      string `json:"suffix,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	TeamLogoURL string `json:"teamLogoUrl,omitempty"`
	LiveStatus  string `json:"liveStatus"`
	Live        bool   `json:"live"`
}

// CategoryView is a single-category tab.
type CategoryView struct {
	Category  string            `json:"category"`
	Title     string            `json:"title"`
	Column    leaders.Column    `json:"column,omitempty"`
	Sort      leaders.SortState `json:"sort"`
	Indicator string            `json:"indicator,omitempty"`
	Leaders   []LeaderCard      `json:"leaders"`
}

// BuildCategory ranks one category. Native order is kept until the tab's
// sort has been touched; rank always reflects the native position.
func BuildCategory(table *leaders.CategoryTable, category string, sort leaders.SortState) CategoryView {
	lines, _ := leaders.ParseCategory(table, category)
	col, mapped := leaders.ColumnFor(category)

	view := CategoryView{
		Category: category,
		Title:    category + " Leaders",
		Leaders:  make([]LeaderCard, 0, len(lines)),
	}
	if mapped {
		view.Column = col
	}

	ranks := make(map[string]int, len(lines))
	for i, line := range lines {
		if _, ok := ranks[line.PlayerName]; !ok {
			ranks[line.PlayerName] = i + 1
		}
	}

	if sort.Active() && (!mapped || sort.Column == col) {
		view.Sort = sort
		view.Indicator = sort.Indicator(sort.Column)
		lines = leaders.SortLines(lines, sort.Direction)
	}

	for _, line := range lines {
		card := LeaderCard{
			Rank:        ranks[line.PlayerName],
			PlayerName:  line.PlayerName,
			TeamCode:    line.TeamCode,
			Value:       line.Value,
			ImageURL:    line.ImageURL,
			TeamLogoURL: teams.LogoURL(line.TeamCode),
			LiveStatus:  line.LiveStatus,
			Live:        line.LiveStatus != leaders.DefaultLiveStatus,
		}
		if mapped {
			card.Suffix = col.Suffix()
		}
		view.Leaders = append(view.Leaders, card)
	}
	return view
}
