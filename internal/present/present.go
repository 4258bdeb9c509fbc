// Package present turns dashboard state into view models for the HTTP and
// terminal front ends. It holds no state of its own.
package present

import (
	"strings"
	"time"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
)

// AllStatsTab is the composite tab key.
const AllStatsTab = "All Stats"

// CompositeTitle heads the composite table.
const CompositeTitle = "Complete Player Statistics"

// Tab is one selectable view.
type Tab struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Composite bool   `json:"composite"`
}

// Tabs lists category tabs in table order followed by the composite tab.
func Tabs(table *leaders.CategoryTable) []Tab {
	categories := table.Categories()
	tabs := make([]Tab, 0, len(categories)+1)
	for _, category := range categories {
		tabs = append(tabs, Tab{Key: category, Label: strings.ToUpper(category)})
	}
	return append(tabs, Tab{Key: AllStatsTab, Label: strings.ToUpper(AllStatsTab), Composite: true})
}

// Sorts holds an independent SortState per tab.
type Sorts map[string]leaders.SortState

// Get returns the tab's state, unsorted when never touched.
func (s Sorts) Get(tab string) leaders.SortState {
	return s[tab]
}

// Request applies a column selection to one tab and returns the new set.
// The receiver is not modified.
func (s Sorts) Request(tab string, col leaders.Column) Sorts {
	next := make(Sorts, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[tab] = s.Get(tab).Request(col)
	return next
}

// View is everything a front end needs for one screen.
type View struct {
	Phase       string          `json:"phase"`
	Loading     bool            `json:"loading"`
	Refreshing  bool            `json:"refreshing"`
	Error       string          `json:"error,omitempty"`
	Tabs        []Tab           `json:"tabs"`
	ActiveTab   string          `json:"activeTab"`
	Category    *CategoryView   `json:"category,omitempty"`
	Composite   *CompositeView  `json:"composite,omitempty"`
	Scoreboard  ScoreboardView  `json:"scoreboard"`
	Diagnostics []DiagnosticRow `json:"diagnostics,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// DiagnosticRow is a skipped leader line.
type DiagnosticRow struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Error    string `json:"error"`
}

// Build assembles the view for the selected tab. An unknown or empty tab
// falls back to the first tab.
func Build(state dashboard.State, tab string, sorts Sorts) View {
	view := View{
		Phase:      state.Phase.String(),
		Loading:    state.Loading(),
		Refreshing: state.Refreshing,
		Error:      state.Message,
		Scoreboard: BuildScoreboard(state.Games),
	}
	if !state.UpdatedAt.IsZero() {
		view.UpdatedAt = state.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if state.Stats == nil {
		return view
	}

	view.Tabs = Tabs(state.Stats)
	view.ActiveTab = resolveTab(view.Tabs, tab)
	for _, d := range state.Diagnostics {
		view.Diagnostics = append(view.Diagnostics, DiagnosticRow{Category: d.Category, Index: d.Index, Error: d.Message()})
	}

	if view.ActiveTab == AllStatsTab {
		composite := BuildComposite(state.Rows, sorts.Get(AllStatsTab), leaders.ColumnsFor(state.Stats))
		view.Composite = &composite
		return view
	}
	category := BuildCategory(state.Stats, view.ActiveTab, sorts.Get(view.ActiveTab))
	view.Category = &category
	return view
}

func resolveTab(tabs []Tab, requested string) string {
	for _, t := range tabs {
		if strings.EqualFold(t.Key, requested) {
			return t.Key
		}
	}
	if len(tabs) == 0 {
		return ""
	}
	return tabs[0].Key
}
