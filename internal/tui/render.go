package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/present"
)

const (
	title       = "NBA Leaders"
	nameWidth   = 24
	teamWidth   = 6
	rankWidth   = 5
	valueWidth  = 18
	statusWidth = 16
	cellWidth   = 14
	cardWidth   = 26
)

// View implements tea.Model.
func (m Model) View() string {
	if m.state.ShowIntro() {
		return m.renderIntro()
	}
	if m.showHelp {
		return m.renderHelp()
	}

	v := m.view()
	sections := []string{
		m.renderHeader(v),
		m.renderTabs(v),
		m.renderBody(v),
		m.renderScoreboard(v.Scoreboard),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderIntro() string {
	lines := []string{
		m.styles.Title.Render(title),
		"",
		m.spinner.View() + " " + m.styles.Muted.Render(introCaption(m.state)),
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func introCaption(s dashboard.State) string {
	if s.Loading() {
		return "Loading today's leaders..."
	}
	return "Ready"
}

func (m Model) renderHeader(v present.View) string {
	parts := []string{m.styles.Title.Render(title)}
	switch {
	case v.Refreshing:
		parts = append(parts, m.spinner.View()+m.styles.Muted.Render(" refreshing"))
	case v.Scoreboard.AnyLive:
		parts = append(parts, m.styles.Live.Render("● LIVE"))
	}
	if v.UpdatedAt != "" {
		parts = append(parts, m.styles.Muted.Render("updated "+v.UpdatedAt))
	}
	if m.lastErr != "" {
		parts = append(parts, m.styles.Danger.Render("refresh failed: "+m.lastErr))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTabs(v present.View) string {
	if len(v.Tabs) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(v.Tabs))
	for _, t := range v.Tabs {
		if t.Key == v.ActiveTab {
			rendered = append(rendered, m.styles.TabActive.Render(t.Label))
			continue
		}
		rendered = append(rendered, m.styles.TabInactive.Render(t.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderBody(v present.View) string {
	switch {
	case v.Category != nil:
		return m.banner(v) + m.renderCategory(*v.Category)
	case v.Composite != nil:
		return m.banner(v) + m.renderComposite(*v.Composite)
	case v.Error != "":
		return "\n" + m.banner(v)
	default:
		return "\n" + m.styles.Muted.Render("No stats yet.") + "\n"
	}
}

// banner shows the current message above the last good data, if any.
func (m Model) banner(v present.View) string {
	if v.Error == "" {
		return ""
	}
	style := m.styles.Warning
	if v.Phase == dashboard.PhaseError.String() {
		style = m.styles.Danger
	}
	return style.Render(v.Error) + "\n"
}

func (m Model) renderCategory(c present.CategoryView) string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render(c.Title + c.Indicator))
	b.WriteString("\n")
	b.WriteString(m.styles.ColumnHead.Render(
		pad("#", rankWidth) + pad("Player", nameWidth) + pad("Team", teamWidth) + pad("Value", valueWidth) + "Status",
	))
	b.WriteString("\n")

	for _, card := range window(c.Leaders, m.offset, m.visibleRows()) {
		value := card.Value
		if card.Suffix != "" {
			value += " " + card.Suffix
		}
		status := m.styles.Muted.Render(truncate(card.LiveStatus, statusWidth))
		if card.Live {
			status = m.styles.Live.Render(truncate(card.LiveStatus, statusWidth))
		}
		b.WriteString(pad(fmt.Sprintf("%d", card.Rank), rankWidth))
		b.WriteString(m.styles.Text.Render(pad(card.PlayerName, nameWidth)))
		b.WriteString(pad(card.TeamCode, teamWidth))
		b.WriteString(pad(value, valueWidth))
		b.WriteString(status)
		b.WriteString("\n")
	}
	if len(c.Leaders) == 0 {
		b.WriteString(m.styles.Muted.Render("No leaders in this category."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderComposite(c present.CompositeView) string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render(c.Title))
	b.WriteString("\n")

	head := pad("Player", nameWidth) + pad("Team", teamWidth)
	for i, h := range c.Headers {
		label := pad(h.Label+h.Indicator, cellWidth)
		if i == m.colCursor {
			head += m.styles.ColumnFocus.Render(label)
			continue
		}
		head += m.styles.ColumnHead.Render(label)
	}
	b.WriteString(head)
	b.WriteString("\n")

	for _, row := range window(c.Rows, m.offset, m.visibleRows()) {
		line := m.styles.Text.Render(pad(row.Name, nameWidth)) + pad(row.Team, teamWidth)
		for _, cell := range row.Cells {
			line += pad(cell, cellWidth)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderScoreboard(s present.ScoreboardView) string {
	if len(s.Games) == 0 {
		return m.styles.Muted.Render(s.EmptyText)
	}
	cards := make([]string, 0, len(s.Games))
	for _, g := range s.Games {
		cards = append(cards, m.renderScoreCard(g))
	}
	perRow := 1
	if m.width > 0 {
		perRow = max(m.width/(cardWidth+4), 1)
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderScoreCard(g present.ScoreCard) string {
	status := g.Status
	if g.Clock != "" {
		status += " " + g.Clock
	}
	statusStyle := m.styles.Muted
	if g.Live {
		statusStyle = m.styles.Live
	}
	lines := []string{
		statusStyle.Render(status),
		m.teamLine(g.Away),
		m.teamLine(g.Home),
	}
	return m.styles.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) teamLine(t present.TeamLine) string {
	line := pad(t.Tricode, 5) + fmt.Sprintf("%3d", t.Score)
	if t.InBonus {
		line += " B"
	}
	if t.IsLeading {
		return m.styles.Leading.Render(line)
	}
	return m.styles.Text.Render(line)
}

func (m Model) renderFooter() string {
	footer := []key.Binding{m.keys.NextTab, m.keys.Sort, m.keys.Refresh, m.keys.Help, m.keys.Quit}
	hints := make([]string, 0, len(footer))
	for _, kb := range footer {
		h := kb.Help()
		hints = append(hints, h.Key+" "+strings.ToLower(h.Desc))
	}
	return m.styles.Muted.Render(strings.Join(hints, " • "))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title + " help"))
	b.WriteString("\n\n")
	for _, kb := range m.keys.bindings() {
		h := kb.Help()
		b.WriteString(m.styles.Accent.Render(pad(h.Key, 14)))
		b.WriteString(m.styles.Text.Render(h.Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press any key to close."))
	return b.String()
}

func window[T any](items []T, offset, size int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+size, len(items))
	return items[offset:end]
}

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(truncate(s, width-1))
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
