package in

import (
	"context"

	"lockedin/internal/modules/analytics/dto"
)

type Usecase interface {
	TodayFocusHours(ctx context.Context) (float64, error)
	TodayProgress(ctx context.Context) (dto.DailyProgressOutput, error)
	UpdateTodayProgress(ctx context.Context, input dto.UpdateTodayProgressInput) (dto.DailyProgressOutput, error)
	StreakCount(ctx context.Context) (int, error)
	WeeklyStats(ctx context.Context) (dto.WeeklyStatsOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	WeeklyReport(ctx context.Context, input dto.WeeklyReportInput) error
}
