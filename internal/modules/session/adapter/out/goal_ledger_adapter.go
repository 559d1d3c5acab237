package out

import (
	"context"

	goalin "lockedin/internal/modules/goal/port/in"
	sessionout "lockedin/internal/modules/session/port/out"
)

type GoalLedgerAdapter struct {
	goals goalin.Usecase
}

func NewGoalLedgerAdapter(goals goalin.Usecase) sessionout.GoalLedger {
	return &GoalLedgerAdapter{goals: goals}
}

func (a *GoalLedgerAdapter) Exists(ctx context.Context, goalID string) error {
	_, err := a.goals.GetGoal(ctx, goalID)
	return err
}

func (a *GoalLedgerAdapter) CreditHours(ctx context.Context, goalID string, hours float64) error {
	_, err := a.goals.UpdateHoursLogged(ctx, goalID, hours)
	return err
}

func (a *GoalLedgerAdapter) RecalculateEfficiency(ctx context.Context, goalID string) error {
	_, err := a.goals.RecalculateEfficiency(ctx, goalID)
	return err
}
