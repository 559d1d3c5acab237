package dto

import "time"

type CreateGoalInput struct {
	Title       string
	Description string
	TargetHours float64
	Deadline    *time.Time
	Color       string
	Status      string
}

// UpdateGoalInput carries only the fields to change; nil leaves a field as is.
type UpdateGoalInput struct {
	ID            string
	Title         *string
	Description   *string
	TargetHours   *float64
	Deadline      *time.Time
	ClearDeadline bool
	Status        *string
	Color         *string
}

type GoalOutput struct {
	ID          string
	Title       string
	Description string
	TargetHours float64
	HoursLogged float64
	Deadline    *time.Time
	Status      string
	Color       string
	Efficiency  *float64
	Progress    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type CreateMilestoneInput struct {
	GoalID string
	Title  string
}

type UpdateMilestoneInput struct {
	ID         string
	Title      *string
	OrderIndex *int
}

type MilestoneOutput struct {
	ID          string
	GoalID      string
	Title       string
	Completed   bool
	CompletedAt *time.Time
	OrderIndex  int
}

type ExportNotesInput struct {
	Dir string
}

type ExportNotesOutput struct {
	Paths []string
}
