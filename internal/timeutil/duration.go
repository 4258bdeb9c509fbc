package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ParseISODuration parses the clock/minutes form used by the live feed,
// e.g. "PT08M35.00S" or "PT1H02M03S". Days and calendar units are rejected.
func ParseISODuration(value string) (time.Duration, error) {
	raw := strings.TrimSpace(value)
	if !strings.HasPrefix(raw, "PT") || len(raw) == 2 {
		return 0, errors.Newf("iso duration %q: expected PT prefix", value)
	}

	var total float64
	rest := raw[2:]
	seen := map[byte]bool{}
	for rest != "" {
		idx := strings.IndexAny(rest, "HMS")
		if idx <= 0 {
			return 0, errors.Newf("iso duration %q: malformed component", value)
		}
		unit := rest[idx]
		if seen[unit] {
			return 0, errors.Newf("iso duration %q: repeated %c", value, unit)
		}
		seen[unit] = true

		if !isDecimal(rest[:idx]) {
			return 0, errors.Newf("iso duration %q: bad number %q", value, rest[:idx])
		}
		n, err := strconv.ParseFloat(rest[:idx], 64)
		if err != nil {
			return 0, errors.Newf("iso duration %q: bad number %q", value, rest[:idx])
		}
		switch unit {
		case 'H':
			total += n * 3600
		case 'M':
			total += n * 60
		case 'S':
			total += n
		}
		rest = rest[idx+1:]
	}
	nanos := math.Round(total * float64(time.Second))
	if nanos >= math.MaxInt64 {
		return 0, errors.Newf("iso duration %q: out of range", value)
	}
	return time.Duration(nanos), nil
}

// isDecimal accepts digits with at most one '.'.
func isDecimal(s string) bool {
	dot := false
	digits := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// FormatClock renders a duration as M:SS, dropping fractional seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return strconv.Itoa(secs/60) + ":" + pad2(secs%60)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
