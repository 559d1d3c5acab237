package dto

import "time"

type DailyProgressOutput struct {
	Date          string
	TotalMinutes  float64
	GoalsWorkedOn int
	StreakCount   int
}

type UpdateTodayProgressInput struct {
	GoalID  string
	Minutes float64
}

type DayTotalOutput struct {
	Date    string
	Minutes float64
}

type WeeklyStatsOutput struct {
	TotalHours        float64
	AvgPerDay         float64
	MostProductiveDay string
	Days              []DayTotalOutput
}

type SummaryOutput struct {
	GeneratedAt time.Time
	TodayHours  float64
	Today       DailyProgressOutput
	Streak      int
	Weekly      WeeklyStatsOutput
}

type WeeklyReportInput struct {
	Path string
}
