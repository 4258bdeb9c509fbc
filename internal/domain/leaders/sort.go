package leaders

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Direction of a column sort.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionDescending
	DirectionAscending
)

func (d Direction) String() string {
	switch d {
	case DirectionDescending:
		return "desc"
	case DirectionAscending:
		return "asc"
	default:
		return "none"
	}
}

// MarshalText encodes the direction as "asc", "desc" or "none".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}

// ParseDirection accepts "asc", "desc" or anything else as none.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending":
		return DirectionDescending
	case "asc", "ascending":
		return DirectionAscending
	default:
		return DirectionNone
	}
}

// SortState is the active column and direction. The zero value is unsorted.
type SortState struct {
	Column    Column    `json:"column,omitempty"`
	Direction Direction `json:"direction"`
}

// Request returns the state after the user selects col. A new column starts
// descending; the active column flips descending <-> ascending. None is only
// ever the initial state.
func (s SortState) Request(col Column) SortState {
	if s.Direction == DirectionNone || s.Column != col {
		return SortState{Column: col, Direction: DirectionDescending}
	}
	if s.Direction == DirectionDescending {
		return SortState{Column: col, Direction: DirectionAscending}
	}
	return SortState{Column: col, Direction: DirectionDescending}
}

// Indicator is the header marker for col: " ↓", " ↑" or "".
func (s SortState) Indicator(col Column) string {
	if s.Column != col {
		return ""
	}
	switch s.Direction {
	case DirectionDescending:
		return " ↓"
	case DirectionAscending:
		return " ↑"
	default:
		return ""
	}
}

// Active reports whether any column has been selected.
func (s SortState) Active() bool {
	return s.Direction != DirectionNone
}

// Coerce turns a display value into a sort key.
//
//   - the sentinel "-" is -Inf, so unranked players go last when descending
//     and first when ascending;
//   - "55.6% (5/9)" uses the number before '%';
//   - "34:51" is minutes and seconds, as fractional minutes;
//   - anything else is parsed as a finite float, NaN when that fails.
//
// NaN orders below -Inf; see Less.
func Coerce(value string) float64 {
	v := strings.TrimSpace(value)
	if v == Sentinel {
		return math.Inf(-1)
	}
	if idx := strings.Index(v, "%"); idx >= 0 {
		return parseFloat(v[:idx])
	}
	if mins, secs, ok := strings.Cut(v, ":"); ok {
		m, errM := strconv.Atoi(mins)
		s, errS := strconv.Atoi(secs)
		if errM != nil || errS != nil || s < 0 || s >= 60 {
			return math.NaN()
		}
		return float64(m) + float64(s)/60
	}
	return parseFloat(v)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return math.NaN()
	}
	return f
}

// Less is the total order over coerced values: NaN < -Inf < reals < +Inf.
func Less(a, b float64) bool {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return false
	case aNaN:
		return true
	case bNaN:
		return false
	default:
		return a < b
	}
}

func compare(a, b float64) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// SortRows returns a sorted copy of rows. Ties keep their input order and
// DirectionNone returns the input order.
func SortRows(rows []PlayerRow, state SortState) []PlayerRow {
	out := slices.Clone(rows)
	if state.Direction == DirectionNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b PlayerRow) int {
		c := compare(Coerce(a.Value(state.Column)), Coerce(b.Value(state.Column)))
		if state.Direction == DirectionDescending {
			return -c
		}
		return c
	})
	return out
}

// SortLines orders decoded leader lines by value. DirectionNone keeps native order.
func SortLines(lines []Line, dir Direction) []Line {
	out := slices.Clone(lines)
	if dir == DirectionNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b Line) int {
		c := compare(Coerce(a.Value), Coerce(b.Value))
		if dir == DirectionDescending {
			return -c
		}
		return c
	})
	return out
}
