package in

import (
	"context"

	"lockedin/internal/modules/goal/dto"
	goalin "lockedin/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error) {
	return h.usecase.CreateGoal(ctx, input)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.GoalOutput, error) {
	return h.usecase.GetGoal(ctx, id)
}

func (h CLIHandler) List(ctx context.Context, activeOnly bool) ([]dto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx, activeOnly)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateGoalInput) (dto.GoalOutput, error) {
	return h.usecase.UpdateGoal(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteGoal(ctx, id)
}

func (h CLIHandler) Recalculate(ctx context.Context, id string) (dto.GoalOutput, error) {
	return h.usecase.RecalculateEfficiency(ctx, id)
}

func (h CLIHandler) AddMilestone(ctx context.Context, goalID, title string) (dto.MilestoneOutput, error) {
	return h.usecase.CreateMilestone(ctx, dto.CreateMilestoneInput{GoalID: goalID, Title: title})
}

func (h CLIHandler) ListMilestones(ctx context.Context, goalID string) ([]dto.MilestoneOutput, error) {
	return h.usecase.ListMilestones(ctx, goalID)
}

func (h CLIHandler) RenameMilestone(ctx context.Context, id, title string) (dto.MilestoneOutput, error) {
	return h.usecase.UpdateMilestone(ctx, dto.UpdateMilestoneInput{ID: id, Title: &title})
}

func (h CLIHandler) ReorderMilestone(ctx context.Context, id string, index int) ([]dto.MilestoneOutput, error) {
	return h.usecase.ReorderMilestone(ctx, id, index)
}

func (h CLIHandler) CompleteMilestone(ctx context.Context, id string) (dto.MilestoneOutput, error) {
	return h.usecase.CompleteMilestone(ctx, id)
}

func (h CLIHandler) DeleteMilestone(ctx context.Context, id string) error {
	return h.usecase.DeleteMilestone(ctx, id)
}

func (h CLIHandler) ExportNotes(ctx context.Context, dir string) (dto.ExportNotesOutput, error) {
	return h.usecase.ExportNotes(ctx, dto.ExportNotesInput{Dir: dir})
}
