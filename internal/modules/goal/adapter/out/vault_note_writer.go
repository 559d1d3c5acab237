package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lockedin/internal/modules/goal/domain"
	goalout "lockedin/internal/modules/goal/port/out"
	"lockedin/internal/platform/markdown"
	"lockedin/internal/platform/slug"
)

const (
	milestonesStart = "<!-- lockedin:milestones:start -->"
	milestonesEnd   = "<!-- lockedin:milestones:end -->"
)

type noteMeta struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Status        string   `yaml:"status"`
	TargetHours   float64  `yaml:"target_hours"`
	HoursLogged   float64  `yaml:"hours_logged"`
	Progress      int      `yaml:"progress"`
	Efficiency    *float64 `yaml:"efficiency,omitempty"`
	Deadline      string   `yaml:"deadline,omitempty"`
	Color         string   `yaml:"color"`
	CreatedAt     string   `yaml:"created_at"`
}

// VaultNoteWriter keeps one markdown note per goal. Only the frontmatter
// and the milestones block are rewritten; the rest of the note is left to
// the user.
type VaultNoteWriter struct{}

func NewVaultNoteWriter() goalout.NoteWriter {
	return VaultNoteWriter{}
}

func (VaultNoteWriter) Write(_ context.Context, dir string, goal domain.Goal, milestones []domain.Milestone) (string, error) {
	goalsDir := filepath.Join(dir, "goals")
	if err := os.MkdirAll(goalsDir, 0o755); err != nil {
		return "", fmt.Errorf("create goals dir: %w", err)
	}
	path := filepath.Join(goalsDir, noteName(goal))

	body := fmt.Sprintf("# %s\n\n%s\n", goal.Title, strings.TrimSpace(goal.Description))
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, prev, splitErr := markdown.SplitFrontmatter(string(existing)); splitErr == nil {
			body = prev
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read goal note: %w", err)
	}
	body = markdown.ReplaceManagedBlock(body, milestonesStart, milestonesEnd, renderMilestones(milestones))

	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            goal.ID,
		Title:         goal.Title,
		Status:        string(goal.Status),
		TargetHours:   goal.TargetHours,
		HoursLogged:   goal.HoursLogged,
		Progress:      goal.Progress(),
		Efficiency:    goal.Efficiency,
		Color:         goal.Color,
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
	}
	if goal.Deadline != nil {
		meta.Deadline = goal.Deadline.Format(time.DateOnly)
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write goal note: %w", err)
	}
	return path, nil
}

// noteName keeps titles that slug alike ("Deep Work!", "Deep Work?") apart
// by appending the start of the goal id.
func noteName(goal domain.Goal) string {
	short := goal.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return slug.Make(goal.Title) + "-" + short + ".md"
}

func renderMilestones(milestones []domain.Milestone) string {
	if len(milestones) == 0 {
		return "_No milestones yet._"
	}
	var b strings.Builder
	b.WriteString("## Milestones\n\n")
	for _, m := range milestones {
		mark := " "
		if m.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, m.Title)
	}
	return b.String()
}
