package out

import (
	"context"

	analyticsdto "lockedin/internal/modules/analytics/dto"
	analyticsin "lockedin/internal/modules/analytics/port/in"
	sessionout "lockedin/internal/modules/session/port/out"
)

type ProgressRecorderAdapter struct {
	analytics analyticsin.Usecase
}

func NewProgressRecorderAdapter(analytics analyticsin.Usecase) sessionout.ProgressRecorder {
	return &ProgressRecorderAdapter{analytics: analytics}
}

func (a *ProgressRecorderAdapter) Record(ctx context.Context, goalID string, minutes float64) error {
	_, err := a.analytics.UpdateTodayProgress(ctx, analyticsdto.UpdateTodayProgressInput{GoalID: goalID, Minutes: minutes})
	return err
}
