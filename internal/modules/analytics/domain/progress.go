package domain

import (
	"math"
	"sort"
	"time"

	"lockedin/internal/platform/clock"
)

// NoDay is reported as the most productive day of an empty week.
const NoDay = "None"

const WeekLength = 7

// DailyProgress is the per-day rollup. Date is YYYY-MM-DD in local time.
type DailyProgress struct {
	ID            string
	Date          string
	TotalMinutes  float64
	GoalsWorkedOn int
	StreakCount   int
}

// CompletedSession is the slice of a focus session analytics reads.
type CompletedSession struct {
	GoalID          string
	StartTime       time.Time
	DurationMinutes float64
}

type DayTotal struct {
	Date    string
	Minutes float64
}

type WeeklyStats struct {
	TotalHours        float64
	AvgPerDay         float64
	MostProductiveDay string
	Days              []DayTotal
}

// Report is what the weekly report renders.
type Report struct {
	GeneratedAt time.Time
	TodayHours  float64
	Today       DailyProgress
	Streak      int
	Weekly      WeeklyStats
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func SumHours(sessions []CompletedSession) float64 {
	var minutes float64
	for _, s := range sessions {
		minutes += s.DurationMinutes
	}
	return Round1(minutes / 60)
}

// Streak counts consecutive days ending today that have focus minutes.
// rows must be sorted by date descending.
func Streak(rows []DailyProgress, today time.Time) int {
	expected := clock.StartOfDay(today)
	todayKey := clock.DateKey(expected)
	streak := 0
	for _, row := range rows {
		if row.Date > todayKey {
			continue
		}
		if row.Date != clock.DateKey(expected) || row.TotalMinutes <= 0 {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// Weekly aggregates completed sessions from the trailing seven days.
// Ties for the most productive day go to the earliest date.
func Weekly(sessions []CompletedSession, now time.Time) WeeklyStats {
	loc := now.Location()
	perDay := map[string]float64{}
	var minutes float64
	for _, s := range sessions {
		key := clock.DateKey(s.StartTime.In(loc))
		perDay[key] += s.DurationMinutes
		minutes += s.DurationMinutes
	}

	best := NoDay
	if len(perDay) > 0 {
		keys := make([]string, 0, len(perDay))
		for k := range perDay {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		best = keys[0]
		for _, k := range keys[1:] {
			if perDay[k] > perDay[best] {
				best = k
			}
		}
	}

	// The rolling window reaches into an eighth calendar date unless now is
	// midnight. That date is charted only when it holds minutes, so Days
	// always sums to the totals.
	today := clock.StartOfDay(now)
	first := today.AddDate(0, 0, -(WeekLength - 1))
	if edge := clock.StartOfDay(now.Add(-WeekLength * 24 * time.Hour)); edge.Before(first) && perDay[clock.DateKey(edge)] > 0 {
		first = edge
	}
	days := make([]DayTotal, 0, WeekLength+1)
	for d := first; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := clock.DateKey(d)
		days = append(days, DayTotal{Date: key, Minutes: perDay[key]})
	}

	total := Round1(minutes / 60)
	return WeeklyStats{
		TotalHours:        total,
		AvgPerDay:         Round1(total / WeekLength),
		MostProductiveDay: best,
		Days:              days,
	}
}
