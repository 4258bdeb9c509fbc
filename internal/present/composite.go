package present

import (
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
)

// Header is one composite column header.
type Header struct {
	Column    leaders.Column `json:"column"`
	Label     string         `json:"label"`
	Indicator string         `json:"indicator,omitempty"`
}

// Row is one composite table row.
type Row struct {
	Name  string   `json:"name"`
	Team  string   `json:"team"`
	Cells []string `json:"cells"`
}

// CompositeView is the all-categories table.
type CompositeView struct {
	Title   string            `json:"title"`
	Sort    leaders.SortState `json:"sort"`
	Headers []Header          `json:"headers"`
	Rows    []Row             `json:"rows"`
}

// BuildComposite sorts rows by state and lays them out over columns.
func BuildComposite(rows []leaders.PlayerRow, state leaders.SortState, columns []leaders.Column) CompositeView {
	view := CompositeView{
		Title:   CompositeTitle,
		Sort:    state,
		Headers: make([]Header, 0, len(columns)),
		Rows:    make([]Row, 0, len(rows)),
	}
	for _, col := range columns {
		view.Headers = append(view.Headers, Header{
			Column:    col,
			Label:     col.Header(),
			Indicator: state.Indicator(col),
		})
	}
	for _, r := range leaders.SortRows(rows, state) {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = r.Value(col)
		}
		view.Rows = append(view.Rows, Row{Name: r.Name, Team: r.Team, Cells: cells})
	}
	return view
}
