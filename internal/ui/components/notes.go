package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lockedin/internal/ui/theme"
)

// NotesSubmitMsg is emitted when the user confirms the session notes.
type NotesSubmitMsg struct{ Notes string }

// NotesCancelMsg is emitted when the user presses esc.
type NotesCancelMsg struct{}

var (
	promptStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// NotesPrompt asks for optional notes before a session is completed.
type NotesPrompt struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewNotesPrompt() NotesPrompt {
	ti := textinput.New()
	ti.Placeholder = "what did you get done? (optional)"
	ti.CharLimit = 500
	return NotesPrompt{input: ti}
}

func (p NotesPrompt) Visible() bool { return p.visible }

// Open shows the prompt, clears the input, and returns the focus command.
func (p *NotesPrompt) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *NotesPrompt) SetWidth(w int) { p.width = w }

func (p NotesPrompt) Update(msg tea.Msg) (NotesPrompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return NotesCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return NotesSubmitMsg{Notes: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p NotesPrompt) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Complete session") + "\n")
	sb.WriteString("> " + p.input.View() + "\n\n")
	sb.WriteString(hintStyle.Render("enter: complete  esc: keep going"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return promptStyle.Width(w - 2).Render(sb.String())
}
