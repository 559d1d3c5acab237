package domain

import (
	"math"
	"time"

	apperrors "lockedin/internal/platform/errors"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// RecentLimit bounds the history handed to the assistant.
const RecentLimit = 10

type FocusSession struct {
	ID              string
	GoalID          string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *float64
	Status          Status
	Notes           string
}

func (s FocusSession) Active() bool {
	return s.Status == StatusActive
}

// DurationMinutes is the wall-clock span rounded to whole minutes.
func DurationMinutes(start, end time.Time) float64 {
	ms := end.Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return math.Round(float64(ms) / 60000)
}

func (s FocusSession) Complete(at time.Time, notes string) (FocusSession, error) {
	if !s.Active() {
		return FocusSession{}, apperrors.ErrSessionNotActive
	}
	minutes := DurationMinutes(s.StartTime, at)
	s.Status = StatusCompleted
	s.EndTime = &at
	s.DurationMinutes = &minutes
	s.Notes = notes
	return s, nil
}

// Cancel ends the session without crediting any time.
func (s FocusSession) Cancel(at time.Time) (FocusSession, error) {
	if !s.Active() {
		return FocusSession{}, apperrors.ErrSessionNotActive
	}
	s.Status = StatusCancelled
	s.EndTime = &at
	s.DurationMinutes = nil
	return s, nil
}
