package usecase

import (
	"context"

	"lockedin/internal/modules/analytics/domain"
	"lockedin/internal/modules/analytics/dto"
	analyticsin "lockedin/internal/modules/analytics/port/in"
	"lockedin/internal/modules/analytics/service"
	"lockedin/internal/platform/tx"
)

type Interactor struct {
	svc *service.AnalyticsService
	tx  tx.Manager
}

func NewInteractor(svc *service.AnalyticsService, txm tx.Manager) analyticsin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, tx: txm}
}

func (i *Interactor) TodayFocusHours(ctx context.Context) (float64, error) {
	return i.svc.TodayFocusHours(ctx)
}

func (i *Interactor) TodayProgress(ctx context.Context) (dto.DailyProgressOutput, error) {
	progress, err := i.svc.TodayProgress(ctx)
	if err != nil {
		return dto.DailyProgressOutput{}, err
	}
	return toProgressOutput(progress), nil
}

func (i *Interactor) UpdateTodayProgress(ctx context.Context, input dto.UpdateTodayProgressInput) (dto.DailyProgressOutput, error) {
	var progress domain.DailyProgress
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		progress, err = i.svc.UpdateTodayProgress(ctx, input.GoalID, input.Minutes)
		return err
	})
	if err != nil {
		return dto.DailyProgressOutput{}, err
	}
	return toProgressOutput(progress), nil
}

func (i *Interactor) StreakCount(ctx context.Context) (int, error) {
	return i.svc.StreakCount(ctx)
}

func (i *Interactor) WeeklyStats(ctx context.Context) (dto.WeeklyStatsOutput, error) {
	stats, err := i.svc.WeeklyStats(ctx)
	if err != nil {
		return dto.WeeklyStatsOutput{}, err
	}
	return toWeeklyOutput(stats), nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	report, err := i.svc.Report(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		GeneratedAt: report.GeneratedAt,
		TodayHours:  report.TodayHours,
		Today:       toProgressOutput(report.Today),
		Streak:      report.Streak,
		Weekly:      toWeeklyOutput(report.Weekly),
	}, nil
}

func (i *Interactor) WeeklyReport(ctx context.Context, input dto.WeeklyReportInput) error {
	return i.svc.WriteWeeklyReport(ctx, input.Path)
}

func toProgressOutput(p domain.DailyProgress) dto.DailyProgressOutput {
	return dto.DailyProgressOutput{
		Date:          p.Date,
		TotalMinutes:  p.TotalMinutes,
		GoalsWorkedOn: p.GoalsWorkedOn,
		StreakCount:   p.StreakCount,
	}
}

func toWeeklyOutput(stats domain.WeeklyStats) dto.WeeklyStatsOutput {
	days := make([]dto.DayTotalOutput, 0, len(stats.Days))
	for _, d := range stats.Days {
		days = append(days, dto.DayTotalOutput{Date: d.Date, Minutes: d.Minutes})
	}
	return dto.WeeklyStatsOutput{
		TotalHours:        stats.TotalHours,
		AvgPerDay:         stats.AvgPerDay,
		MostProductiveDay: stats.MostProductiveDay,
		Days:              days,
	}
}
