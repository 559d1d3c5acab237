package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "lockedin/internal/modules/analytics/dto"
	"lockedin/internal/ui/theme"
)

type StatsPort interface {
	Summary(ctx context.Context) (analyticsdto.SummaryOutput, error)
}

type SummaryLoadedMsg struct {
	Summary analyticsdto.SummaryOutput
	Err     error
}

type Model struct {
	port    StatsPort
	summary analyticsdto.SummaryOutput
	err     error
	loaded  bool
	width   int
	height  int
}

func New(port StatsPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		s, err := m.port.Summary(context.Background())
		return SummaryLoadedMsg{Summary: s, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SummaryLoadedMsg:
		m.loaded = true
		m.summary = msg.Summary
		m.err = msg.Err
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Refresh()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Loading stats…")
	}
	if m.err != nil {
		return theme.Error.Render("stats: " + m.err.Error())
	}
	s := m.summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "\n")
	sb.WriteString(fmt.Sprintf("%s%.1fh across %d goal(s)\n", theme.Muted.Render("focus:  "), s.TodayHours, s.Today.GoalsWorkedOn))
	sb.WriteString(fmt.Sprintf("%s%d day(s)\n\n", theme.Muted.Render("streak: "), s.Streak))

	sb.WriteString(theme.Title.Render("Last 7 days") + "\n")
	sb.WriteString(fmt.Sprintf("%s%.1fh  %s%.1fh/day  %s%s\n\n",
		theme.Muted.Render("total "), s.Weekly.TotalHours,
		theme.Muted.Render("avg "), s.Weekly.AvgPerDay,
		theme.Muted.Render("best "), s.Weekly.MostProductiveDay))

	peak := 0.0
	for _, d := range s.Weekly.Days {
		peak = max(peak, d.Minutes)
	}
	barW := max(m.width/2, 10)
	for _, d := range s.Weekly.Days {
		n := 0
		if peak > 0 {
			n = int(d.Minutes / peak * float64(barW))
		}
		bar := lipgloss.NewStyle().Foreground(theme.Green).Render(strings.Repeat("█", n))
		sb.WriteString(fmt.Sprintf("%s %s %s\n", theme.Muted.Render(d.Date), bar, theme.Muted.Render(fmt.Sprintf("%.0fm", d.Minutes))))
	}
	sb.WriteString("\n" + theme.Muted.Render("r: refresh"))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}
