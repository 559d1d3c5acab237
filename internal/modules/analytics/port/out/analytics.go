package out

import (
	"context"
	"time"

	"lockedin/internal/modules/analytics/domain"
)

type ProgressStore interface {
	// Ensure inserts progress unless a row for its date exists.
	Ensure(ctx context.Context, progress domain.DailyProgress) error
	FindByDate(ctx context.Context, date string) (domain.DailyProgress, error)
	Save(ctx context.Context, progress domain.DailyProgress) error
	// ListUpTo returns rows dated on or before date, newest first.
	ListUpTo(ctx context.Context, date string) ([]domain.DailyProgress, error)
}

// SessionReader reads focus session history. Ranges are [from, to).
type SessionReader interface {
	CompletedBetween(ctx context.Context, from, to time.Time) ([]domain.CompletedSession, error)
	DistinctGoalsBetween(ctx context.Context, from, to time.Time) (int, error)
}

type ReportWriter interface {
	WriteWeekly(ctx context.Context, path string, report domain.Report) error
}
