package domain

import (
	"math"
	"regexp"
	"strings"
	"time"

	apperrors "lockedin/internal/platform/errors"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

const (
	DefaultColor  = "#3b82f6"
	SchemaVersion = 1
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Goal struct {
	ID          string
	Title       string
	Description string
	TargetHours float64
	HoursLogged float64
	Deadline    *time.Time
	Status      Status
	Color       string
	Efficiency  *float64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived:
		return nil
	default:
		return apperrors.Invalid("unsupported goal status %q", string(s))
	}
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return apperrors.Invalid("id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return apperrors.Invalid("title is required")
	}
	if math.IsNaN(g.TargetHours) || g.TargetHours <= 0 {
		return apperrors.Invalid("target hours must be greater than zero")
	}
	if g.HoursLogged < 0 {
		return apperrors.Invalid("hours logged cannot be negative")
	}
	if err := g.Status.Validate(); err != nil {
		return err
	}
	if !hexColor.MatchString(g.Color) {
		return apperrors.Invalid("color must look like #rrggbb, got %q", g.Color)
	}
	return nil
}

// Progress is logged hours as a percentage of the target, rounded.
func (g Goal) Progress() int {
	return int(math.Round(g.HoursLogged / g.TargetHours * 100))
}

// ComputeEfficiency compares logged hours with the hours expected by now.
// Without a deadline the whole target is expected. With one, the target is
// spread linearly from creation to deadline and at least one hour is
// expected. The result is not clamped.
func ComputeEfficiency(g Goal, now time.Time) float64 {
	if g.Deadline == nil {
		return g.HoursLogged / g.TargetHours * 100
	}
	total := g.Deadline.Sub(g.CreatedAt)
	expected := g.TargetHours
	if total > 0 {
		elapsed := now.Sub(g.CreatedAt)
		expected = g.TargetHours * elapsed.Seconds() / total.Seconds()
	}
	expected = math.Max(expected, 1)
	return g.HoursLogged / expected * 100
}

// GoalPatch lists the fields UpdateGoal may change. Nil means unchanged.
type GoalPatch struct {
	Title         *string
	Description   *string
	TargetHours   *float64
	Deadline      *time.Time
	ClearDeadline bool
	Status        *Status
	Color         *string
}

func (p GoalPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.TargetHours == nil &&
		p.Deadline == nil && !p.ClearDeadline && p.Status == nil && p.Color == nil
}

// Apply returns g with the patch merged. The result still needs Validate.
func (p GoalPatch) Apply(g Goal) (Goal, error) {
	if p.Deadline != nil && p.ClearDeadline {
		return Goal{}, apperrors.Invalid("deadline cannot be set and cleared at once")
	}
	if p.Title != nil {
		g.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.TargetHours != nil {
		g.TargetHours = *p.TargetHours
	}
	if p.Deadline != nil {
		d := *p.Deadline
		g.Deadline = &d
	}
	if p.ClearDeadline {
		g.Deadline = nil
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	return g, nil
}
