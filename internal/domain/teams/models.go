package teams

import (
	"bytes"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Team is one side of a live game as reported by the score feed.
type Team struct {
	ID                int    `json:"teamId"`
	Name              string `json:"teamName"`
	City              string `json:"teamCity"`
	Tricode           string `json:"teamTricode"`
	Score             int    `json:"score"`
	InBonus           Bonus  `json:"inBonus"`
	TimeoutsRemaining int    `json:"timeoutsRemaining"`
}

// FullName joins city and nickname, e.g. "Boston Celtics".
func (t Team) FullName() string {
	switch {
	case t.City == "":
		return t.Name
	case t.Name == "":
		return t.City
	default:
		return t.City + " " + t.Name
	}
}

// LogoURL prefers the feed's team id and falls back to the tricode table.
func (t Team) LogoURL() string {
	if t.ID != 0 {
		return LogoURLForID(t.ID)
	}
	return LogoURL(t.Tricode)
}

// Bonus is the team-foul bonus flag. The live feed sends "0"/"1" strings,
// other producers send booleans or null.
type Bonus bool

// MarshalJSON always writes a boolean.
func (b Bonus) MarshalJSON() ([]byte, error) {
	return strconv.AppendBool(nil, bool(b)), nil
}

// UnmarshalJSON accepts true/false, "0"/"1", "true"/"false", numbers and null.
func (b *Bonus) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*b = false
		return nil
	}
	raw = bytes.Trim(raw, `"`)
	if len(raw) == 0 {
		*b = false
		return nil
	}
	if v, err := strconv.ParseBool(string(raw)); err == nil {
		*b = Bonus(v)
		return nil
	}
	if n, err := strconv.ParseFloat(string(raw), 64); err == nil {
		*b = n != 0
		return nil
	}
	return errors.Newf("inBonus: unsupported value %s", data)
}
