package leaders

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

const (
	valueSeparator = ": "
	imageSeparator = " ||| "
	statusOpen     = " ["
	statusClose    = "]"

	// DefaultLiveStatus is used when a line carries no status tag.
	DefaultLiveStatus = "Final"
)

// ErrMalformedLine matches every ParseError.
var ErrMalformedLine = errors.New("malformed leader line")

// Line is one decoded leader line.
type Line struct {
	PlayerName string `json:"playerName"`
	TeamCode   string `json:"teamCode"`
	Value      string `json:"value"`
	ImageURL   string `json:"imageUrl,omitempty"`
	LiveStatus string `json:"liveStatus"`
}

// HasImage reports whether the line carried an image URL.
func (l Line) HasImage() bool {
	return l.ImageURL != ""
}

// ParseError reports a leader line that does not follow
// "<Name> (<TEAM>)[ [<Status>]]: <Value> ||| <ImageURL>".
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return "parse leader line " + quote(e.Line) + ": " + e.Reason
}

// Is lets errors.Is(err, ErrMalformedLine) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedLine
}

func malformed(line, reason string) error {
	return &ParseError{Line: line, Reason: reason}
}

// Parse decodes a single leader line. It never panics; malformed input
// returns a *ParseError.
func Parse(raw string) (Line, error) {
	identity, valuePart, ok := strings.Cut(raw, valueSeparator)
	if !ok {
		return Line{}, malformed(raw, `missing ": " separator`)
	}

	status := DefaultLiveStatus
	if strings.HasSuffix(identity, statusClose) {
		if idx := strings.LastIndex(identity, statusOpen); idx >= 0 {
			tag := strings.TrimSpace(identity[idx+len(statusOpen) : len(identity)-len(statusClose)])
			if tag != "" {
				status = tag
			}
			identity = identity[:idx]
		}
	}

	open := strings.LastIndex(identity, "(")
	if open < 0 {
		return Line{}, malformed(raw, `missing "(" before team code`)
	}
	closeRel := strings.Index(identity[open:], ")")
	if closeRel < 0 {
		return Line{}, malformed(raw, `missing ")" after team code`)
	}
	closeIdx := open + closeRel
	if rest := strings.TrimSpace(identity[closeIdx+1:]); rest != "" {
		return Line{}, malformed(raw, "unexpected text after team code")
	}

	name := strings.TrimSpace(identity[:open])
	if name == "" {
		return Line{}, malformed(raw, "empty player name")
	}
	team := strings.TrimSpace(identity[open+1 : closeIdx])
	if team == "" {
		return Line{}, malformed(raw, "empty team code")
	}

	value, image, _ := strings.Cut(valuePart, imageSeparator)
	value = strings.TrimSpace(value)
	if value == "" {
		return Line{}, malformed(raw, "empty value")
	}

	return Line{
		PlayerName: name,
		TeamCode:   team,
		Value:      value,
		ImageURL:   strings.TrimSpace(image),
		LiveStatus: status,
	}, nil
}

// FormatLine renders a Line back into the wire format Parse accepts.
// A "Final" status is written explicitly so live and finished games look alike.
func FormatLine(l Line) string {
	var b strings.Builder
	b.WriteString(l.PlayerName)
	b.WriteString(" (")
	b.WriteString(l.TeamCode)
	b.WriteString(")")
	if l.LiveStatus != "" {
		b.WriteString(statusOpen)
		b.WriteString(l.LiveStatus)
		b.WriteString(statusClose)
	}
	b.WriteString(valueSeparator)
	b.WriteString(l.Value)
	b.WriteString(imageSeparator)
	b.WriteString(l.ImageURL)
	return b.String()
}

// quote clips s to 80 bytes on a rune boundary.
func quote(s string) string {
	const limit = 80
	if len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return `"` + s + `"`
}
