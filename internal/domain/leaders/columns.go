package leaders

import (
	"github.com/cockroachdb/errors"
)

// Column is one stat column of the composite table.
type Column string

const (
	ColumnPoints    Column = "Points"
	ColumnRebounds  Column = "Rebounds"
	ColumnAssists   Column = "Assists"
	ColumnSteals    Column = "Steals"
	ColumnBlocks    Column = "Blocks"
	ColumnMinutes   Column = "Minutes"
	ColumnTurnovers Column = "Turnovers"
	ColumnFGPct     Column = "FG%"
	ColumnThreePct  Column = "3P%"
	ColumnFTPct     Column = "FT%"
)

// Columns lists every column in display order.
var Columns = []Column{
	ColumnPoints,
	ColumnRebounds,
	ColumnAssists,
	ColumnSteals,
	ColumnBlocks,
	ColumnMinutes,
	ColumnTurnovers,
	ColumnFGPct,
	ColumnThreePct,
	ColumnFTPct,
}

// Category names emitted by the upstream feeds.
const (
	CategoryPoints        = "Points"
	CategoryRebounds      = "Rebounds"
	CategoryAssists       = "Assists"
	CategorySteals        = "Steals"
	CategoryBlocks        = "Blocks"
	CategoryMinutes       = "Minutes"
	CategoryTurnovers     = "Turnovers"
	CategoryFieldGoalPct  = "Field Goal %"
	CategoryThreePointPct = "3-Point %"
	CategoryFreeThrowPct  = "Free Throw %"
)

// categoryColumns is the closed category → column table.
var categoryColumns = map[string]Column{
	CategoryPoints:        ColumnPoints,
	CategoryRebounds:      ColumnRebounds,
	CategoryAssists:       ColumnAssists,
	CategorySteals:        ColumnSteals,
	CategoryBlocks:        ColumnBlocks,
	CategoryMinutes:       ColumnMinutes,
	CategoryTurnovers:     ColumnTurnovers,
	CategoryFieldGoalPct:  ColumnFGPct,
	"FG%":                 ColumnFGPct,
	CategoryThreePointPct: ColumnThreePct,
	"3P%":                 ColumnThreePct,
	CategoryFreeThrowPct:  ColumnFTPct,
	"FT%":                 ColumnFTPct,
}

type columnMeta struct {
	header string
	suffix string
}

var columnInfo = map[Column]columnMeta{
	ColumnPoints:    {header: "PTS", suffix: "PTS"},
	ColumnRebounds:  {header: "REB", suffix: "REB"},
	ColumnAssists:   {header: "AST", suffix: "AST"},
	ColumnSteals:    {header: "STL", suffix: "STL"},
	ColumnBlocks:    {header: "BLK", suffix: "BLK"},
	ColumnMinutes:   {header: "MIN", suffix: "MIN"},
	ColumnTurnovers: {header: "TO", suffix: "TO"},
	ColumnFGPct:     {header: "FG%", suffix: "FG"},
	ColumnThreePct:  {header: "3P%", suffix: "3PT"},
	ColumnFTPct:     {header: "FT%", suffix: "FT"},
}

// ColumnFor resolves a category name to its column.
func ColumnFor(category string) (Column, bool) {
	col, ok := categoryColumns[category]
	return col, ok
}

// ParseColumn accepts a column key or any known category alias.
func ParseColumn(key string) (Column, bool) {
	for _, col := range Columns {
		if string(col) == key {
			return col, true
		}
	}
	return ColumnFor(key)
}

// Header is the short table header for the column.
func (c Column) Header() string {
	if meta, ok := columnInfo[c]; ok {
		return meta.header
	}
	return string(c)
}

// Suffix is the unit shown next to a leader's value.
func (c Column) Suffix() string {
	if meta, ok := columnInfo[c]; ok {
		return meta.suffix
	}
	return ""
}

// ColumnsFor returns the columns reachable from the table's categories in
// display order. A nil or unmapped table yields every column.
func ColumnsFor(table *CategoryTable) []Column {
	present := make(map[Column]bool)
	for _, category := range table.Categories() {
		if col, ok := ColumnFor(category); ok {
			present[col] = true
		}
	}
	if len(present) == 0 {
		return append([]Column(nil), Columns...)
	}
	out := make([]Column, 0, len(present))
	for _, col := range Columns {
		if present[col] {
			out = append(out, col)
		}
	}
	return out
}

// CheckColumns validates the category → column table. Run at startup.
func CheckColumns() error {
	known := make(map[Column]bool, len(Columns))
	for _, col := range Columns {
		if known[col] {
			return errors.Newf("column %q listed twice", col)
		}
		known[col] = true
		if _, ok := columnInfo[col]; !ok {
			return errors.Newf("column %q has no header", col)
		}
	}

	reached := make(map[Column]bool, len(Columns))
	for category, col := range categoryColumns {
		if !known[col] {
			return errors.Newf("category %q maps to unknown column %q", category, col)
		}
		reached[col] = true
	}
	for _, col := range Columns {
		if !reached[col] {
			return errors.Newf("column %q has no category", col)
		}
	}
	if len(columnInfo) != len(Columns) {
		return errors.Newf("column metadata has %d entries for %d columns", len(columnInfo), len(Columns))
	}
	return nil
}
