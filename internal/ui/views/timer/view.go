package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "lockedin/internal/modules/timer/dto"
	"lockedin/internal/ui/components"
	"lockedin/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context, goalID string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Cancel(ctx context.Context) error
	Complete(ctx context.Context, notes string) error
	Refresh(ctx context.Context) error
	Snapshot() timerdto.Snapshot
	Subscribe() (<-chan timerdto.Snapshot, func())
	ViewFor(goalID string) string
}

// ─── messages ────────────────────────────────────────────────────────────────

type SnapshotMsg timerdto.Snapshot

// RefreshMsg asks the controller to look for sessions changed by another
// process.
type RefreshMsg struct{}

// RefreshInterval paces RefreshMsg.
const RefreshInterval = 5 * time.Second

// ActionDoneMsg reports the result of a timer command.
type ActionDoneMsg struct {
	Action string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port        TimerPort
	updates     <-chan timerdto.Snapshot
	unsubscribe func()

	goalID    string
	goalTitle string
	snap      timerdto.Snapshot
	notes     components.NotesPrompt
	status    string
	width     int
	height    int
}

func New(port TimerPort) Model {
	ch, cancel := port.Subscribe()
	return Model{
		port:        port,
		updates:     ch,
		unsubscribe: cancel,
		snap:        port.Snapshot(),
		notes:       components.NewNotesPrompt(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitCmd(), m.refreshCmd())
}

// SetGoal points the view at goalID. The running timer is not touched.
func (m *Model) SetGoal(goalID, title string) {
	m.goalID = goalID
	m.goalTitle = title
	m.status = ""
}

func (m Model) GoalID() string { return m.goalID }

// Prompting reports whether the notes prompt owns the keyboard.
func (m Model) Prompting() bool { return m.notes.Visible() }

// Close drops the snapshot subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	// Controller traffic keeps flowing while the notes prompt is open.
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = timerdto.Snapshot(msg)
		return m, m.waitCmd()

	case RefreshMsg:
		port := m.port
		return m, tea.Batch(func() tea.Msg {
			_ = port.Refresh(context.Background())
			return nil
		}, scheduleRefresh())
	}

	if m.notes.Visible() {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notes.SetWidth(min(m.width-4, 72))

	case ActionDoneMsg:
		if msg.Err != nil {
			m.status = msg.Action + " failed: " + msg.Err.Error()
		} else {
			m.status = msg.Action
		}

	case components.NotesSubmitMsg:
		return m, m.actionCmd("completed", func(ctx context.Context) error {
			return m.port.Complete(ctx, msg.Notes)
		})

	case components.NotesCancelMsg:
		m.status = "still focusing"

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	view := m.port.ViewFor(m.goalID)
	switch msg.String() {
	case "s", "enter":
		if m.goalID == "" {
			m.status = "pick a goal first"
			return m, nil
		}
		goalID := m.goalID
		return m, m.actionCmd("started", func(ctx context.Context) error {
			return m.port.Start(ctx, goalID)
		})
	case "p", " ":
		switch view {
		case "running":
			return m, m.actionCmd("paused", m.port.Pause)
		case "paused":
			return m, m.actionCmd("resumed", m.port.Resume)
		}
	case "c":
		if view == "running" || view == "paused" {
			return m, m.notes.Open()
		}
	case "x":
		if view == "running" || view == "paused" {
			return m, m.actionCmd("cancelled", m.port.Cancel)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.notes.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.notes.View())
	}

	view := m.port.ViewFor(m.goalID)
	title := m.goalTitle
	if title == "" {
		title = "no goal selected"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	if view == "inactive" {
		sb.WriteString(theme.Hot.Render("inactive: another session running") + "\n")
		sb.WriteString(theme.Muted.Render("finish or cancel it before starting this goal") + "\n")
	} else {
		remaining := m.snap.Remaining
		if view == "idle" {
			remaining = m.snap.Length
		}
		clock := theme.Clock.Foreground(theme.StateColor(view)).Render(FormatRemaining(remaining))
		sb.WriteString(clock + "\n\n")
		sb.WriteString(theme.Muted.Render("state: ") + lipgloss.NewStyle().Foreground(theme.StateColor(view)).Render(view) + "\n")
	}
	if m.snap.LastError != nil {
		sb.WriteString("\n" + theme.Error.Render(m.snap.LastError.Error()) + "\n")
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Muted.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(keyHints(view)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.Pane.Render(sb.String()))
}

// FormatRemaining renders d as MM:SS, rounding partial seconds up.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ─── private ─────────────────────────────────────────────────────────────────

func keyHints(view string) string {
	switch view {
	case "running":
		return "p: pause  c: complete  x: cancel"
	case "paused":
		return "p: resume  c: complete  x: cancel"
	case "inactive":
		return "tab: back to goals"
	default:
		return "s: start"
	}
}

func (m Model) waitCmd() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg(snap)
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(time.Time) tea.Msg { return RefreshMsg{} })
}

func (m Model) actionCmd(action string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Action: action, Err: fn(context.Background())}
	}
}
