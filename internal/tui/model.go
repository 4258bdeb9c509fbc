// Package tui renders the leaders dashboard in the terminal with Bubble Tea.
// It reads dashboard state from the controller and never mutates it except
// to signal that the intro animation has finished.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/present"
)

// defaultIntroDuration is how long the intro exit plays once data lands.
const defaultIntroDuration = 800 * time.Millisecond

// Source is the dashboard controller as seen by the terminal UI.
type Source interface {
	Snapshot() dashboard.State
	Dispatch(ev dashboard.Event) dashboard.State
	Subscribe(fn func(dashboard.State)) func()
}

// Poller drives the source. Refresh runs one fetch on demand.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// Options configures the terminal UI.
type Options struct {
	Context       context.Context
	Source        Source
	Poller        Poller
	Logger        *slog.Logger
	DefaultTab    string
	Accent        string
	IntroDuration time.Duration
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctx    context.Context
	source Source
	poller Poller
	logger *slog.Logger

	keys    keyMap
	styles  styles
	spinner spinner.Model
	intro   time.Duration
	exiting bool

	state     dashboard.State
	tab       string
	sorts     present.Sorts
	colCursor int
	offset    int
	showHelp  bool
	lastErr   string

	width  int
	height int
}

// Messages

type stateMsg dashboard.State

type introDoneMsg struct{}

type refreshDoneMsg struct{ err error }

// New creates the model from the source's current snapshot.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	intro := opts.IntroDuration
	if intro <= 0 {
		intro = defaultIntroDuration
	}
	st := newStyles(opts.Accent)

	m := Model{
		ctx:     ctx,
		source:  opts.Source,
		poller:  opts.Poller,
		logger:  opts.Logger,
		keys:    defaultKeyMap(),
		styles:  st,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.Accent)),
		intro:   intro,
		state:   dashboard.Initial(),
		tab:     opts.DefaultTab,
		sorts:   present.Sorts{},
	}
	if opts.Source != nil {
		m.state = opts.Source.Snapshot()
	}
	m.exiting = m.state.Intro == dashboard.IntroExiting
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.exiting {
		return tea.Batch(m.spinner.Tick, introCmd(m.intro))
	}
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m.apply(dashboard.State(msg))
		if !m.exiting && m.state.Intro == dashboard.IntroExiting {
			m.exiting = true
			return m, introCmd(m.intro)
		}
		return m, nil

	case introDoneMsg:
		return m, m.completeIntroCmd()

	case refreshDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			logging.Warn(m.logger, "manual refresh failed", "error", msg.err)
		} else {
			m.lastErr = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply takes a newer snapshot and keeps the cursor and scroll in range.
func (m *Model) apply(s dashboard.State) {
	if s.Seq < m.state.Seq {
		return
	}
	m.state = s
	if cols := m.compositeColumns(); m.colCursor >= len(cols) {
		m.colCursor = max(len(cols)-1, 0)
	}
	m.clampOffset()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.state.Interactive() {
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.NextTab):
		m.moveTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.moveTab(-1)
	case key.Matches(msg, m.keys.ColLeft):
		if m.colCursor > 0 {
			m.colCursor--
		}
	case key.Matches(msg, m.keys.ColRight):
		if m.colCursor < len(m.compositeColumns())-1 {
			m.colCursor++
		}
	case key.Matches(msg, m.keys.Sort):
		m.requestSort()
	case key.Matches(msg, m.keys.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(msg, m.keys.Down):
		m.offset++
		m.clampOffset()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m *Model) moveTab(delta int) {
	tabs := m.tabs()
	if len(tabs) == 0 {
		return
	}
	current := m.activeTab()
	idx := 0
	for i, t := range tabs {
		if t.Key == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	m.tab = tabs[idx].Key
	m.offset = 0
}

// requestSort toggles the sort of the active tab. Category tabs sort on
// their own column; the composite tab sorts on the focused column.
func (m *Model) requestSort() {
	tab := m.activeTab()
	if tab == "" {
		return
	}
	if tab == present.AllStatsTab {
		cols := m.compositeColumns()
		if len(cols) == 0 {
			return
		}
		m.sorts = m.sorts.Request(tab, cols[m.colCursor])
		return
	}
	if col, ok := leaders.ColumnFor(tab); ok {
		m.sorts = m.sorts.Request(tab, col)
	}
}

func (m Model) tabs() []present.Tab {
	if m.state.Stats == nil {
		return nil
	}
	return present.Tabs(m.state.Stats)
}

func (m Model) activeTab() string {
	return m.view().ActiveTab
}

func (m Model) view() present.View {
	return present.Build(m.state, m.tab, m.sorts)
}

func (m Model) compositeColumns() []leaders.Column {
	if m.state.Stats == nil {
		return nil
	}
	return leaders.ColumnsFor(m.state.Stats)
}

func (m *Model) clampOffset() {
	limit := max(m.rowCount()-m.visibleRows(), 0)
	if m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) rowCount() int {
	v := m.view()
	switch {
	case v.Composite != nil:
		return len(v.Composite.Rows)
	case v.Category != nil:
		return len(v.Category.Leaders)
	default:
		return 0
	}
}

// visibleRows leaves room for the header, tabs, scoreboard and footer.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-14, 3)
}

// Commands

func introCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return introDoneMsg{}
	})
}

// completeIntroCmd dispatches IntroCompleted off the update loop so the
// controller's subscribers can send back into the program.
func (m Model) completeIntroCmd() tea.Cmd {
	source := m.source
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		return stateMsg(source.Dispatch(dashboard.IntroCompleted{}))
	}
}

func (m Model) refreshCmd() tea.Cmd {
	plr := m.poller
	ctx := m.ctx
	if plr == nil {
		return nil
	}
	return func() tea.Msg {
		return refreshDoneMsg{err: plr.Refresh(ctx)}
	}
}
