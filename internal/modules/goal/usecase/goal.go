package usecase

import (
	"context"

	"lockedin/internal/modules/goal/domain"
	"lockedin/internal/modules/goal/dto"
	goalin "lockedin/internal/modules/goal/port/in"
	"lockedin/internal/modules/goal/service"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/tx"
)

type Interactor struct {
	svc *service.GoalService
	tx  tx.Manager
}

func NewInteractor(svc *service.GoalService, txm tx.Manager) goalin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, tx: txm}
}

func (i *Interactor) CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error) {
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.Create(ctx, input.Title, input.Description, input.TargetHours, input.Deadline, input.Color, input.Status)
		return err
	})
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) GetGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	goal, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) ListGoals(ctx context.Context, activeOnly bool) ([]dto.GoalOutput, error) {
	goals, err := i.svc.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, goal := range goals {
		out = append(out, toGoalOutput(goal))
	}
	return out, nil
}

func (i *Interactor) UpdateGoal(ctx context.Context, input dto.UpdateGoalInput) (dto.GoalOutput, error) {
	patch := domain.GoalPatch{
		Title:         input.Title,
		Description:   input.Description,
		TargetHours:   input.TargetHours,
		Deadline:      input.Deadline,
		ClearDeadline: input.ClearDeadline,
		Color:         input.Color,
	}
	if input.Status != nil {
		status := domain.Status(*input.Status)
		patch.Status = &status
	}
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.Update(ctx, input.ID, patch)
		return err
	})
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) DeleteGoal(ctx context.Context, id string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Delete(ctx, id)
	})
}

func (i *Interactor) UpdateHoursLogged(ctx context.Context, id string, hoursDelta float64) (dto.GoalOutput, error) {
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.AddHours(ctx, id, hoursDelta)
		return err
	})
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) RecalculateEfficiency(ctx context.Context, id string) (dto.GoalOutput, error) {
	var goal domain.Goal
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		goal, err = i.svc.RecalculateEfficiency(ctx, id)
		return err
	})
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) CreateMilestone(ctx context.Context, input dto.CreateMilestoneInput) (dto.MilestoneOutput, error) {
	var milestone domain.Milestone
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		milestone, err = i.svc.AddMilestone(ctx, input.GoalID, input.Title)
		return err
	})
	if err != nil {
		return dto.MilestoneOutput{}, err
	}
	return toMilestoneOutput(milestone), nil
}

func (i *Interactor) ListMilestones(ctx context.Context, goalID string) ([]dto.MilestoneOutput, error) {
	milestones, err := i.svc.ListMilestones(ctx, goalID)
	if err != nil {
		return nil, err
	}
	return toMilestoneOutputs(milestones), nil
}

func (i *Interactor) UpdateMilestone(ctx context.Context, input dto.UpdateMilestoneInput) (dto.MilestoneOutput, error) {
	if input.Title == nil && input.OrderIndex == nil {
		return dto.MilestoneOutput{}, apperrors.Invalid("nothing to update")
	}
	var milestone domain.Milestone
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		if input.Title != nil {
			if milestone, err = i.svc.RenameMilestone(ctx, input.ID, *input.Title); err != nil {
				return err
			}
		}
		if input.OrderIndex != nil {
			reordered, err := i.svc.ReorderMilestone(ctx, input.ID, *input.OrderIndex)
			if err != nil {
				return err
			}
			for _, m := range reordered {
				if m.ID == input.ID {
					milestone = m
				}
			}
		}
		return nil
	})
	if err != nil {
		return dto.MilestoneOutput{}, err
	}
	return toMilestoneOutput(milestone), nil
}

func (i *Interactor) ReorderMilestone(ctx context.Context, id string, index int) ([]dto.MilestoneOutput, error) {
	var milestones []domain.Milestone
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		milestones, err = i.svc.ReorderMilestone(ctx, id, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toMilestoneOutputs(milestones), nil
}

func (i *Interactor) CompleteMilestone(ctx context.Context, id string) (dto.MilestoneOutput, error) {
	var milestone domain.Milestone
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		milestone, err = i.svc.CompleteMilestone(ctx, id)
		return err
	})
	if err != nil {
		return dto.MilestoneOutput{}, err
	}
	return toMilestoneOutput(milestone), nil
}

func (i *Interactor) DeleteMilestone(ctx context.Context, id string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.DeleteMilestone(ctx, id)
	})
}

func (i *Interactor) ExportNotes(ctx context.Context, input dto.ExportNotesInput) (dto.ExportNotesOutput, error) {
	paths, err := i.svc.ExportNotes(ctx, input.Dir)
	if err != nil {
		return dto.ExportNotesOutput{}, err
	}
	return dto.ExportNotesOutput{Paths: paths}, nil
}

func toGoalOutput(goal domain.Goal) dto.GoalOutput {
	return dto.GoalOutput{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		TargetHours: goal.TargetHours,
		HoursLogged: goal.HoursLogged,
		Deadline:    goal.Deadline,
		Status:      string(goal.Status),
		Color:       goal.Color,
		Efficiency:  goal.Efficiency,
		Progress:    goal.Progress(),
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

func toMilestoneOutput(m domain.Milestone) dto.MilestoneOutput {
	return dto.MilestoneOutput{
		ID:          m.ID,
		GoalID:      m.GoalID,
		Title:       m.Title,
		Completed:   m.Completed,
		CompletedAt: m.CompletedAt,
		OrderIndex:  m.OrderIndex,
	}
}

func toMilestoneOutputs(milestones []domain.Milestone) []dto.MilestoneOutput {
	out := make([]dto.MilestoneOutput, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, toMilestoneOutput(m))
	}
	return out
}
