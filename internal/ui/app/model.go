package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lockedin/internal/ui/theme"
	goalsview "lockedin/internal/ui/views/goals"
	statsview "lockedin/internal/ui/views/stats"
	timerview "lockedin/internal/ui/views/timer"
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabGoals tabID = iota
	tabTimer
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Goals", "Timer", "Stats"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Start    key.Binding
	Pause    key.Binding
	Complete key.Binding
	Cancel   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus goal")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Cancel:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Start, k.Pause, k.Complete, k.Cancel},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Focus preselects a goal and opens the timer tab.
type Focus struct {
	GoalID string
	Title  string
}

// Model is the root Bubble Tea model. It owns tab routing and the help
// overlay; the timer itself lives behind the timer port.
type Model struct {
	timer timerview.TimerPort

	goalsView goalsview.Model
	timerView timerview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	width     int
	height    int
}

func NewModel(goals goalsview.GoalsPort, timer timerview.TimerPort, stats statsview.StatsPort, focus Focus) Model {
	m := Model{
		timer:     timer,
		goalsView: goalsview.New(goals),
		timerView: timerview.New(timer),
		statsView: statsview.New(stats),
		activeTab: tabGoals,
		keys:      defaultKeys(),
		help:      help.New(),
		status:    "ready",
	}
	if focus.GoalID != "" {
		m.timerView.SetGoal(focus.GoalID, focus.Title)
		m.activeTab = tabTimer
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.goalsView.Init(),
		m.timerView.Init(),
		m.statsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The notes prompt intercepts all input while open.
	if m.timerView.Prompting() {
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Timer traffic always reaches the timer view, whatever tab is shown.
	case timerview.SnapshotMsg, timerview.RefreshMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case timerview.ActionDoneMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err != nil {
			m.status = msg.Action + " failed"
		} else {
			m.status = "session " + msg.Action
			if msg.Action == "completed" || msg.Action == "cancelled" {
				cmds = append(cmds, m.goalsView.Refresh(), m.statsView.Refresh())
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the goal list while its search filter is active.
		if m.activeTab == tabGoals && m.goalsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.timerView.Close()
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "enter":
			if m.activeTab == tabGoals {
				if g, ok := m.goalsView.Selected(); ok {
					m.timerView.SetGoal(g.ID, g.Title)
					m.activeTab = tabTimer
					m.status = "focus: " + g.Title
				}
				return m, nil
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabGoals:
		m.goalsView, tabCmd = m.goalsView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	// Async results for background tabs still need delivering.
	switch msg.(type) {
	case goalsview.GoalsLoadedMsg, goalsview.MilestonesLoadedMsg:
		if m.activeTab != tabGoals {
			m.goalsView, tabCmd = m.goalsView.Update(msg)
			cmds = append(cmds, tabCmd)
		}
	case statsview.SummaryLoadedMsg:
		if m.activeTab != tabStats {
			m.statsView, _ = m.statsView.Update(msg)
		}
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	} else {
		switch m.activeTab {
		case tabGoals:
			content = m.goalsView.View()
		case tabTimer:
			content = m.timerView.View()
		case tabStats:
			content = m.statsView.View()
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "lockedin  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	snap := m.timer.Snapshot()
	if snap.State == "running" || snap.State == "paused" {
		label := "session"
		if snap.GoalID == m.timerView.GoalID() {
			label = "focus"
		}
		dot := lipgloss.NewStyle().Foreground(theme.StateColor(snap.State)).Render("● " + label + " " + timerview.FormatRemaining(snap.Remaining))
		left = dot + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.goalsView, _ = m.goalsView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}
