package out

import (
	"context"

	"lockedin/internal/modules/session/domain"
)

type SessionStore interface {
	// Insert fails with apperrors.ErrActiveSessionExists when another
	// active session is stored.
	Insert(ctx context.Context, session domain.FocusSession) error
	Update(ctx context.Context, session domain.FocusSession) error
	FindByID(ctx context.Context, id string) (domain.FocusSession, error)
	FindActive(ctx context.Context) (domain.FocusSession, error)
	ListByGoal(ctx context.Context, goalID string) ([]domain.FocusSession, error)
	RecentCompleted(ctx context.Context, limit int) ([]domain.FocusSession, error)
}

// GoalLedger is the goal side of a completed session.
type GoalLedger interface {
	Exists(ctx context.Context, goalID string) error
	CreditHours(ctx context.Context, goalID string, hours float64) error
	RecalculateEfficiency(ctx context.Context, goalID string) error
}

// ProgressRecorder feeds completed minutes into the daily rollup.
type ProgressRecorder interface {
	Record(ctx context.Context, goalID string, minutes float64) error
}
