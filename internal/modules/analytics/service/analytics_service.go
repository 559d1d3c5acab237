package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"lockedin/internal/modules/analytics/domain"
	analyticsout "lockedin/internal/modules/analytics/port/out"
	"lockedin/internal/platform/clock"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/id"
)

type AnalyticsService struct {
	clock    clock.Clock
	idGen    id.Generator
	progress analyticsout.ProgressStore
	sessions analyticsout.SessionReader
	reports  analyticsout.ReportWriter
}

func NewAnalyticsService(clock clock.Clock, idGen id.Generator, progress analyticsout.ProgressStore, sessions analyticsout.SessionReader, reports analyticsout.ReportWriter) *AnalyticsService {
	return &AnalyticsService{clock: clock, idGen: idGen, progress: progress, sessions: sessions, reports: reports}
}

func (s *AnalyticsService) TodayFocusHours(ctx context.Context) (float64, error) {
	from, to := dayBounds(s.clock.Now())
	sessions, err := s.sessions.CompletedBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return domain.SumHours(sessions), nil
}

// TodayProgress returns today's row, creating an empty one if needed.
func (s *AnalyticsService) TodayProgress(ctx context.Context) (domain.DailyProgress, error) {
	return s.today(ctx, s.clock.Now())
}

// UpdateTodayProgress adds minutes to today's total, refreshes the number
// of distinct goals with sessions today and extends yesterday's streak.
func (s *AnalyticsService) UpdateTodayProgress(ctx context.Context, goalID string, minutes float64) (domain.DailyProgress, error) {
	if strings.TrimSpace(goalID) == "" {
		return domain.DailyProgress{}, apperrors.Invalid("goal id is required")
	}
	if minutes < 0 {
		return domain.DailyProgress{}, apperrors.Invalid("minutes cannot be negative")
	}
	now := s.clock.Now()
	progress, err := s.today(ctx, now)
	if err != nil {
		return domain.DailyProgress{}, err
	}
	from, to := dayBounds(now)
	goals, err := s.sessions.DistinctGoalsBetween(ctx, from, to)
	if err != nil {
		return domain.DailyProgress{}, err
	}

	streak := 1
	yesterday, err := s.progress.FindByDate(ctx, clock.DateKey(from.AddDate(0, 0, -1)))
	switch {
	case err == nil:
		streak = yesterday.StreakCount + 1
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.DailyProgress{}, err
	}

	progress.TotalMinutes += minutes
	progress.GoalsWorkedOn = goals
	progress.StreakCount = streak
	if err := s.progress.Save(ctx, progress); err != nil {
		return domain.DailyProgress{}, err
	}
	return progress, nil
}

func (s *AnalyticsService) StreakCount(ctx context.Context) (int, error) {
	now := s.clock.Now()
	rows, err := s.progress.ListUpTo(ctx, clock.DateKey(now))
	if err != nil {
		return 0, err
	}
	return domain.Streak(rows, now), nil
}

func (s *AnalyticsService) WeeklyStats(ctx context.Context) (domain.WeeklyStats, error) {
	return s.weekly(ctx, s.clock.Now())
}

func (s *AnalyticsService) Report(ctx context.Context) (domain.Report, error) {
	now := s.clock.Now()
	from, to := dayBounds(now)
	todaySessions, err := s.sessions.CompletedBetween(ctx, from, to)
	if err != nil {
		return domain.Report{}, err
	}
	today, err := s.today(ctx, now)
	if err != nil {
		return domain.Report{}, err
	}
	rows, err := s.progress.ListUpTo(ctx, clock.DateKey(now))
	if err != nil {
		return domain.Report{}, err
	}
	weekly, err := s.weekly(ctx, now)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Report{
		GeneratedAt: now,
		TodayHours:  domain.SumHours(todaySessions),
		Today:       today,
		Streak:      domain.Streak(rows, now),
		Weekly:      weekly,
	}, nil
}

func (s *AnalyticsService) WriteWeeklyReport(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.Invalid("report path is required")
	}
	report, err := s.Report(ctx)
	if err != nil {
		return err
	}
	return s.reports.WriteWeekly(ctx, path, report)
}

func (s *AnalyticsService) today(ctx context.Context, now time.Time) (domain.DailyProgress, error) {
	key := clock.DateKey(now)
	if err := s.progress.Ensure(ctx, domain.DailyProgress{ID: s.idGen.New(), Date: key}); err != nil {
		return domain.DailyProgress{}, err
	}
	return s.progress.FindByDate(ctx, key)
}

func (s *AnalyticsService) weekly(ctx context.Context, now time.Time) (domain.WeeklyStats, error) {
	sessions, err := s.sessions.CompletedBetween(ctx, now.Add(-domain.WeekLength*24*time.Hour), now.Add(time.Millisecond))
	if err != nil {
		return domain.WeeklyStats{}, err
	}
	return domain.Weekly(sessions, now), nil
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	from := clock.StartOfDay(now)
	return from, from.AddDate(0, 0, 1)
}
