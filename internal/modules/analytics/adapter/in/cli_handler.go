package in

import (
	"context"

	"lockedin/internal/modules/analytics/dto"
	analyticsin "lockedin/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (float64, dto.DailyProgressOutput, error) {
	hours, err := h.usecase.TodayFocusHours(ctx)
	if err != nil {
		return 0, dto.DailyProgressOutput{}, err
	}
	progress, err := h.usecase.TodayProgress(ctx)
	if err != nil {
		return 0, dto.DailyProgressOutput{}, err
	}
	return hours, progress, nil
}

func (h CLIHandler) Streak(ctx context.Context) (int, error) {
	return h.usecase.StreakCount(ctx)
}

func (h CLIHandler) Week(ctx context.Context) (dto.WeeklyStatsOutput, error) {
	return h.usecase.WeeklyStats(ctx)
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Report(ctx context.Context, path string) error {
	return h.usecase.WeeklyReport(ctx, dto.WeeklyReportInput{Path: path})
}
