package out

import (
	"context"

	"lockedin/internal/modules/assistant/domain"
	assistantout "lockedin/internal/modules/assistant/port/out"
	goalin "lockedin/internal/modules/goal/port/in"
)

type GoalSourceAdapter struct {
	goals goalin.Usecase
}

func NewGoalSourceAdapter(goals goalin.Usecase) assistantout.GoalSource {
	return &GoalSourceAdapter{goals: goals}
}

func (a *GoalSourceAdapter) ActiveGoals(ctx context.Context) ([]domain.GoalSummary, error) {
	goals, err := a.goals.ListGoals(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]domain.GoalSummary, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.GoalSummary{Title: g.Title, Progress: g.Progress, Status: g.Status})
	}
	return out, nil
}
