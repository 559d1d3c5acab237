package in

import (
	"context"

	"lockedin/internal/modules/goal/dto"
)

type Usecase interface {
	CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error)
	GetGoal(ctx context.Context, id string) (dto.GoalOutput, error)
	ListGoals(ctx context.Context, activeOnly bool) ([]dto.GoalOutput, error)
	UpdateGoal(ctx context.Context, input dto.UpdateGoalInput) (dto.GoalOutput, error)
	DeleteGoal(ctx context.Context, id string) error

	UpdateHoursLogged(ctx context.Context, id string, hoursDelta float64) (dto.GoalOutput, error)
	RecalculateEfficiency(ctx context.Context, id string) (dto.GoalOutput, error)

	CreateMilestone(ctx context.Context, input dto.CreateMilestoneInput) (dto.MilestoneOutput, error)
	ListMilestones(ctx context.Context, goalID string) ([]dto.MilestoneOutput, error)
	UpdateMilestone(ctx context.Context, input dto.UpdateMilestoneInput) (dto.MilestoneOutput, error)
	ReorderMilestone(ctx context.Context, id string, index int) ([]dto.MilestoneOutput, error)
	CompleteMilestone(ctx context.Context, id string) (dto.MilestoneOutput, error)
	DeleteMilestone(ctx context.Context, id string) error

	ExportNotes(ctx context.Context, input dto.ExportNotesInput) (dto.ExportNotesOutput, error)
}
