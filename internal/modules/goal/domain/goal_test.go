package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"lockedin/internal/modules/goal/domain"
	apperrors "lockedin/internal/platform/errors"
)

func baseGoal() domain.Goal {
	return domain.Goal{
		ID:          "g-1",
		Title:       "Learn Go",
		TargetHours: 10,
		Status:      domain.StatusActive,
		Color:       domain.DefaultColor,
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestGoalValidate(t *testing.T) {
	t.Parallel()
	if err := baseGoal().Validate(); err != nil {
		t.Fatalf("goal should be valid: %v", err)
	}
	mutations := map[string]func(*domain.Goal){
		"empty title":     func(g *domain.Goal) { g.Title = "  " },
		"zero target":     func(g *domain.Goal) { g.TargetHours = 0 },
		"negative target": func(g *domain.Goal) { g.TargetHours = -3 },
		"bad status":      func(g *domain.Goal) { g.Status = "paused" },
		"bad color":       func(g *domain.Goal) { g.Color = "blue" },
		"negative hours":  func(g *domain.Goal) { g.HoursLogged = -1 },
	}
	for name, mutate := range mutations {
		g := baseGoal()
		mutate(&g)
		if err := g.Validate(); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestComputeEfficiencyWithoutDeadline(t *testing.T) {
	t.Parallel()
	g := baseGoal()
	g.HoursLogged = 5
	if got := domain.ComputeEfficiency(g, g.CreatedAt.Add(48*time.Hour)); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestComputeEfficiencyAheadOfPaceAtCreation(t *testing.T) {
	t.Parallel()
	g := baseGoal()
	g.TargetHours = 20
	g.HoursLogged = 2
	deadline := g.CreatedAt.Add(10 * 24 * time.Hour)
	g.Deadline = &deadline
	if got := domain.ComputeEfficiency(g, g.CreatedAt); got != 200 {
		t.Fatalf("expected 200, got %v", got)
	}
}

func TestComputeEfficiencyLinearPace(t *testing.T) {
	t.Parallel()
	g := baseGoal()
	g.TargetHours = 20
	g.HoursLogged = 5
	deadline := g.CreatedAt.Add(10 * 24 * time.Hour)
	g.Deadline = &deadline
	// Halfway: 10 hours expected.
	got := domain.ComputeEfficiency(g, g.CreatedAt.Add(5*24*time.Hour))
	if math.Abs(got-50) > 1e-9 {
		t.Fatalf("expected 50, got %v", got)
	}
	// Past the deadline the expectation keeps growing, efficiency is not clamped.
	got = domain.ComputeEfficiency(g, g.CreatedAt.Add(20*24*time.Hour))
	if math.Abs(got-12.5) > 1e-9 {
		t.Fatalf("expected 12.5, got %v", got)
	}
}

func TestComputeEfficiencyDeadlineNotAfterCreation(t *testing.T) {
	t.Parallel()
	g := baseGoal()
	g.HoursLogged = 5
	deadline := g.CreatedAt
	g.Deadline = &deadline
	if got := domain.ComputeEfficiency(g, g.CreatedAt.Add(time.Hour)); got != 50 {
		t.Fatalf("expected full target expected, got %v", got)
	}
}

func TestGoalPatchApply(t *testing.T) {
	t.Parallel()
	g := baseGoal()
	deadline := g.CreatedAt.Add(24 * time.Hour)
	g.Deadline = &deadline

	title := "  Master Go "
	target := 40.0
	status := domain.StatusCompleted
	patched, err := domain.GoalPatch{Title: &title, TargetHours: &target, Status: &status, ClearDeadline: true}.Apply(g)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if patched.Title != "Master Go" || patched.TargetHours != 40 || patched.Status != domain.StatusCompleted || patched.Deadline != nil {
		t.Fatalf("unexpected patched goal %+v", patched)
	}
	if g.Deadline == nil {
		t.Fatalf("apply must not mutate the original")
	}
	if _, err := (domain.GoalPatch{Deadline: &deadline, ClearDeadline: true}).Apply(g); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("conflicting deadline patch should fail, got %v", err)
	}
	if !(domain.GoalPatch{}).Empty() {
		t.Fatalf("zero patch should be empty")
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()
	g := baseGoal()
	g.HoursLogged = 3.33
	if got := g.Progress(); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}
