package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText    = "#E6E6E6"
	colorMuted   = "#8A8F98"
	colorSurface = "#1B1F27"
	colorLive    = "#2ECC71"
	colorDanger  = "#FF5C5C"
	colorWarning = "#F5A623"
)

// styles are the lipgloss styles derived from one accent color.
type styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Muted       lipgloss.Style
	Text        lipgloss.Style
	Accent      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	ColumnHead  lipgloss.Style
	ColumnFocus lipgloss.Style
	Live        lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Card        lipgloss.Style
	Leading     lipgloss.Style
}

func newStyles(accent string) styles {
	if accent == "" {
		accent = "#C9082A"
	}
	a := lipgloss.Color(accent)
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorText)).
			Background(a).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(colorSurface)).
			Foreground(lipgloss.Color(colorText)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)),
		Accent: lipgloss.NewStyle().
			Foreground(a).
			Bold(true),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorText)).
			Background(a).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 1),
		ColumnHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorText)),
		ColumnFocus: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(a),
		Live:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorLive)).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorDanger)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorMuted)).
			Padding(0, 1),
		Leading: lipgloss.NewStyle().Bold(true).Foreground(a),
	}
}
