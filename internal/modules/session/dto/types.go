package dto

import "time"

type StartInput struct {
	GoalID string
}

type CompleteInput struct {
	SessionID string
	Notes     string
}

type CancelInput struct {
	SessionID string
}

type SessionOutput struct {
	ID              string
	GoalID          string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *float64
	Status          string
	Notes           string
}
