package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"lockedin/internal/modules/goal/domain"
	goalout "lockedin/internal/modules/goal/port/out"
	"lockedin/internal/platform/clock"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/id"
)

type GoalService struct {
	clock      clock.Clock
	idGen      id.Generator
	goals      goalout.GoalStore
	milestones goalout.MilestoneStore
	notes      goalout.NoteWriter
}

func NewGoalService(clock clock.Clock, idGen id.Generator, goals goalout.GoalStore, milestones goalout.MilestoneStore, notes goalout.NoteWriter) *GoalService {
	return &GoalService{clock: clock, idGen: idGen, goals: goals, milestones: milestones, notes: notes}
}

func (s *GoalService) Create(ctx context.Context, title, description string, targetHours float64, deadline *time.Time, color, status string) (domain.Goal, error) {
	if color == "" {
		color = domain.DefaultColor
	}
	if status == "" {
		status = string(domain.StatusActive)
	}
	goal := domain.Goal{
		ID:          s.idGen.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		TargetHours: targetHours,
		Deadline:    deadline,
		Status:      domain.Status(status),
		Color:       color,
		CreatedAt:   s.clock.Now(),
	}
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, err
	}
	if err := s.ensureTitleFree(ctx, goal.Title, ""); err != nil {
		return domain.Goal{}, err
	}
	if err := s.goals.Insert(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, goalID string) (domain.Goal, error) {
	return s.goals.FindByID(ctx, goalID)
}

func (s *GoalService) List(ctx context.Context, activeOnly bool) ([]domain.Goal, error) {
	return s.goals.List(ctx, activeOnly)
}

func (s *GoalService) Update(ctx context.Context, goalID string, patch domain.GoalPatch) (domain.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	if patch.Empty() {
		return goal, nil
	}
	updated, err := patch.Apply(goal)
	if err != nil {
		return domain.Goal{}, err
	}
	if err := updated.Validate(); err != nil {
		return domain.Goal{}, err
	}
	if updated.Title != goal.Title {
		if err := s.ensureTitleFree(ctx, updated.Title, goal.ID); err != nil {
			return domain.Goal{}, err
		}
	}
	now := s.clock.Now()
	updated.UpdatedAt = &now
	paceChanged := patch.TargetHours != nil || patch.Deadline != nil || patch.ClearDeadline
	if paceChanged && updated.Efficiency != nil {
		eff := domain.ComputeEfficiency(updated, now)
		updated.Efficiency = &eff
	}
	if err := s.goals.Update(ctx, updated); err != nil {
		return domain.Goal{}, err
	}
	return updated, nil
}

func (s *GoalService) Delete(ctx context.Context, goalID string) error {
	if _, err := s.goals.FindByID(ctx, goalID); err != nil {
		return err
	}
	return s.goals.Delete(ctx, goalID)
}

// AddHours adds hoursDelta to the logged hours. Calls are not deduplicated.
func (s *GoalService) AddHours(ctx context.Context, goalID string, hoursDelta float64) (domain.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	next := goal.HoursLogged + hoursDelta
	if next < 0 {
		return domain.Goal{}, apperrors.Invalid("hours logged would become negative (%.2f)", next)
	}
	now := s.clock.Now()
	goal.HoursLogged = next
	goal.UpdatedAt = &now
	if err := s.goals.Update(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) RecalculateEfficiency(ctx context.Context, goalID string) (domain.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	now := s.clock.Now()
	eff := domain.ComputeEfficiency(goal, now)
	goal.Efficiency = &eff
	goal.UpdatedAt = &now
	if err := s.goals.Update(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) AddMilestone(ctx context.Context, goalID, title string) (domain.Milestone, error) {
	if _, err := s.goals.FindByID(ctx, goalID); err != nil {
		return domain.Milestone{}, err
	}
	existing, err := s.milestones.ListByGoal(ctx, goalID)
	if err != nil {
		return domain.Milestone{}, err
	}
	milestone := domain.Milestone{
		ID:         s.idGen.New(),
		GoalID:     goalID,
		Title:      strings.TrimSpace(title),
		OrderIndex: len(existing),
	}
	if err := milestone.Validate(); err != nil {
		return domain.Milestone{}, err
	}
	if err := s.milestones.Insert(ctx, milestone); err != nil {
		return domain.Milestone{}, err
	}
	return milestone, nil
}

func (s *GoalService) ListMilestones(ctx context.Context, goalID string) ([]domain.Milestone, error) {
	if _, err := s.goals.FindByID(ctx, goalID); err != nil {
		return nil, err
	}
	return s.milestones.ListByGoal(ctx, goalID)
}

func (s *GoalService) RenameMilestone(ctx context.Context, milestoneID, title string) (domain.Milestone, error) {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		return domain.Milestone{}, err
	}
	milestone.Title = strings.TrimSpace(title)
	if err := milestone.Validate(); err != nil {
		return domain.Milestone{}, err
	}
	if err := s.milestones.Update(ctx, milestone); err != nil {
		return domain.Milestone{}, err
	}
	return milestone, nil
}

func (s *GoalService) ReorderMilestone(ctx context.Context, milestoneID string, index int) ([]domain.Milestone, error) {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	ordered, err := s.milestones.ListByGoal(ctx, milestone.GoalID)
	if err != nil {
		return nil, err
	}
	previous := make(map[string]int, len(ordered))
	for _, m := range ordered {
		previous[m.ID] = m.OrderIndex
	}
	reordered, err := domain.Reorder(ordered, milestoneID, index)
	if err != nil {
		return nil, err
	}
	for _, m := range reordered {
		if previous[m.ID] == m.OrderIndex {
			continue
		}
		if err := s.milestones.Update(ctx, m); err != nil {
			return nil, err
		}
	}
	return reordered, nil
}

func (s *GoalService) CompleteMilestone(ctx context.Context, milestoneID string) (domain.Milestone, error) {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		return domain.Milestone{}, err
	}
	done, err := milestone.Complete(s.clock.Now())
	if err != nil {
		return domain.Milestone{}, err
	}
	if err := s.milestones.Update(ctx, done); err != nil {
		return domain.Milestone{}, err
	}
	return done, nil
}

// DeleteMilestone removes the milestone and closes the gap in the ordering.
func (s *GoalService) DeleteMilestone(ctx context.Context, milestoneID string) error {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	if err := s.milestones.Delete(ctx, milestoneID); err != nil {
		return err
	}
	remaining, err := s.milestones.ListByGoal(ctx, milestone.GoalID)
	if err != nil {
		return err
	}
	for i, m := range remaining {
		if m.OrderIndex == i {
			continue
		}
		m.OrderIndex = i
		if err := s.milestones.Update(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *GoalService) ExportNotes(ctx context.Context, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, apperrors.Invalid("export dir is required")
	}
	goals, err := s.goals.List(ctx, false)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(goals))
	for _, goal := range goals {
		milestones, err := s.milestones.ListByGoal(ctx, goal.ID)
		if err != nil {
			return nil, err
		}
		path, err := s.notes.Write(ctx, dir, goal, milestones)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *GoalService) ensureTitleFree(ctx context.Context, title, selfID string) error {
	existing, err := s.goals.FindByTitle(ctx, title)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.ErrDuplicateTitle
	case err == nil, errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return err
	}
}
