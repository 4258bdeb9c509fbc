package leaders

import (
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// Sentinel marks a column the player has no entry in.
const Sentinel = "-"

// PlayerRow is one player across every column.
type PlayerRow struct {
	Name   string
	Team   string
	values map[Column]string
}

func newPlayerRow(name, team string) PlayerRow {
	values := make(map[Column]string, len(Columns))
	for _, col := range Columns {
		values[col] = Sentinel
	}
	return PlayerRow{Name: name, Team: team, values: values}
}

// NewPlayerRow builds a row with the given values; missing columns hold the sentinel.
func NewPlayerRow(name, team string, values map[Column]string) PlayerRow {
	row := newPlayerRow(name, team)
	for col, v := range values {
		row.values[col] = v
	}
	return row
}

// Value returns the display value for a column.
func (r PlayerRow) Value(col Column) string {
	if v, ok := r.values[col]; ok {
		return v
	}
	return Sentinel
}

// Has reports whether the column holds a real value.
func (r PlayerRow) Has(col Column) bool {
	return r.Value(col) != Sentinel
}

// MarshalJSON writes name, team and every column in display order.
func (r PlayerRow) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`{"name":`)
	if err := writeJSONString(buf, r.Name); err != nil {
		return nil, err
	}
	_, _ = buf.WriteString(`,"team":`)
	if err := writeJSONString(buf, r.Team); err != nil {
		return nil, err
	}
	for _, col := range Columns {
		_ = buf.WriteByte(',')
		if err := writeJSONString(buf, string(col)); err != nil {
			return nil, err
		}
		_ = buf.WriteByte(':')
		if err := writeJSONString(buf, r.Value(col)); err != nil {
			return nil, err
		}
	}
	_ = buf.WriteByte('}')
	return append([]byte(nil), buf.B...), nil
}

// Diagnostic records a leader line skipped during merge.
type Diagnostic struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Err      error  `json:"-"`
}

// Message is the error text for display and logs.
func (d Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}

// MergeResult is the output of Merge.
type MergeResult struct {
	Rows        []PlayerRow
	Diagnostics []Diagnostic
}

// Merge folds every category into one row per player name, first-seen order.
// Malformed lines are skipped and reported; unknown categories still create rows.
// The first team seen for a name is kept.
func Merge(table *CategoryTable) MergeResult {
	var result MergeResult
	index := make(map[string]int)

	for _, category := range table.Categories() {
		col, mapped := ColumnFor(category)
		for i, raw := range table.Lines(category) {
			line, err := Parse(raw)
			if err != nil {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Category: category,
					Index:    i,
					Err:      errors.Wrapf(err, "category %q line %d", category, i),
				})
				continue
			}
			pos, seen := index[line.PlayerName]
			if !seen {
				pos = len(result.Rows)
				index[line.PlayerName] = pos
				result.Rows = append(result.Rows, newPlayerRow(line.PlayerName, line.TeamCode))
			}
			if mapped {
				result.Rows[pos].values[col] = line.Value
			}
		}
	}
	return result
}

// ParseCategory decodes one category in native order, skipping malformed lines.
func ParseCategory(table *CategoryTable, category string) ([]Line, []Diagnostic) {
	raw := table.Lines(category)
	lines := make([]Line, 0, len(raw))
	var diags []Diagnostic
	for i, r := range raw {
		line, err := Parse(r)
		if err != nil {
			diags = append(diags, Diagnostic{
				Category: category,
				Index:    i,
				Err:      errors.Wrapf(err, "category %q line %d", category, i),
			})
			continue
		}
		lines = append(lines, line)
	}
	return lines, diags
}
