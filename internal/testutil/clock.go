package testutil

import "time"

// TipoffText is Tipoff as the dashboard renders it.
const TipoffText = "2024-03-01T01:02:03Z"

// Tipoff is the instant controllers built by NewController stamp results with.
var Tipoff = MustParseRFC3339(TipoffText)

// NowAt returns a clock fixed at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
