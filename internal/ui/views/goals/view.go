package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "lockedin/internal/modules/goal/dto"
	"lockedin/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type GoalsPort interface {
	List(ctx context.Context, activeOnly bool) ([]goaldto.GoalOutput, error)
	ListMilestones(ctx context.Context, goalID string) ([]goaldto.MilestoneOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type GoalsLoadedMsg struct {
	Goals []goaldto.GoalOutput
	Err   error
}

type MilestonesLoadedMsg struct {
	GoalID     string
	Milestones []goaldto.MilestoneOutput
	Err        error
}

// ─── list item ───────────────────────────────────────────────────────────────

type goalItem struct {
	goal goaldto.GoalOutput
}

func (i goalItem) Title() string { return i.goal.Title }
func (i goalItem) Description() string {
	return fmt.Sprintf("%.1f / %gh  %d%%  %s", i.goal.HoursLogged, i.goal.TargetHours, i.goal.Progress, i.goal.Status)
}
func (i goalItem) FilterValue() string { return i.goal.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       GoalsPort
	list       list.Model
	milestones []goaldto.MilestoneOutput
	detail     viewport.Model
	spinner    spinner.Model
	loading    bool
	width      int
	height     int
}

func New(port GoalsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads goals, e.g. after a session credited hours.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		goals, err := m.port.List(context.Background(), false)
		return GoalsLoadedMsg{Goals: goals, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case GoalsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Goals: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = goalItem{goal: g}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if item, ok := m.list.SelectedItem().(goalItem); ok {
			cmds = append(cmds, m.loadMilestonesCmd(item.goal.ID))
		}

	case MilestonesLoadedMsg:
		if msg.Err == nil {
			m.milestones = msg.Milestones
			m.detail.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(goalItem); ok {
				cmds = append(cmds, m.loadMilestonesCmd(item.goal.ID))
			}
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading goals…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the highlighted goal, if any.
func (m Model) Selected() (goaldto.GoalOutput, bool) {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal, true
	}
	return goaldto.GoalOutput{}, false
}

// Filtering reports whether the list's search filter is active, in which
// case the app must not treat keys as global bindings.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	g, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("Create a goal with `lockedin goal create`")
	}
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Bold(true).Render(g.Title) + "\n\n")
	if g.Description != "" {
		sb.WriteString(g.Description + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("status:     ") + g.Status + "\n")
	sb.WriteString(fmt.Sprintf("%s%.2f / %gh (%d%%)\n", theme.Muted.Render("hours:      "), g.HoursLogged, g.TargetHours, g.Progress))
	if g.Efficiency != nil {
		sb.WriteString(fmt.Sprintf("%s%.1f%%\n", theme.Muted.Render("efficiency: "), *g.Efficiency))
	}
	if g.Deadline != nil {
		sb.WriteString(theme.Muted.Render("deadline:   ") + g.Deadline.Format("2006-01-02") + "\n")
	}
	if len(m.milestones) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Milestones") + "\n")
		for _, ms := range m.milestones {
			box := "[ ]"
			if ms.Completed {
				box = theme.Muted.Render("[x]")
			}
			sb.WriteString(box + " " + ms.Title + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: focus on this goal"))
	return sb.String()
}

func (m Model) loadMilestonesCmd(goalID string) tea.Cmd {
	return func() tea.Msg {
		ms, err := m.port.ListMilestones(context.Background(), goalID)
		return MilestonesLoadedMsg{GoalID: goalID, Milestones: ms, Err: err}
	}
}
