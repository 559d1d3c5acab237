package in

import (
	"context"

	"lockedin/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Complete(ctx context.Context, input dto.CompleteInput) (dto.SessionOutput, error)
	Cancel(ctx context.Context, input dto.CancelInput) (dto.SessionOutput, error)
	// GetActive returns apperrors.ErrNoActiveSession when nothing is running.
	GetActive(ctx context.Context) (dto.SessionOutput, error)
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	ListByGoal(ctx context.Context, goalID string) ([]dto.SessionOutput, error)
	Recent(ctx context.Context, limit int) ([]dto.SessionOutput, error)
}
