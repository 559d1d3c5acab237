package domain

import (
	"strings"
	"time"

	apperrors "lockedin/internal/platform/errors"
)

type Milestone struct {
	ID          string
	GoalID      string
	Title       string
	Completed   bool
	CompletedAt *time.Time
	OrderIndex  int
}

func (m Milestone) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return apperrors.Invalid("milestone id is required")
	}
	if strings.TrimSpace(m.GoalID) == "" {
		return apperrors.Invalid("goal id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return apperrors.Invalid("milestone title is required")
	}
	if m.OrderIndex < 0 {
		return apperrors.Invalid("order index cannot be negative")
	}
	return nil
}

// Complete marks m done. Completion is one-way.
func (m Milestone) Complete(at time.Time) (Milestone, error) {
	if m.Completed {
		return Milestone{}, apperrors.ErrMilestoneCompleted
	}
	m.Completed = true
	m.CompletedAt = &at
	return m, nil
}

type MilestonePatch struct {
	Title      *string
	OrderIndex *int
}

// Reorder moves the milestone with id to index within ordered, returning
// the full list with contiguous indexes.
func Reorder(ordered []Milestone, id string, index int) ([]Milestone, error) {
	from := -1
	for i, m := range ordered {
		if m.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, apperrors.NotFound("milestone", id)
	}
	if index < 0 || index >= len(ordered) {
		return nil, apperrors.Invalid("order index %d out of range [0,%d)", index, len(ordered))
	}
	moved := ordered[from]
	rest := make([]Milestone, 0, len(ordered))
	rest = append(rest, ordered[:from]...)
	rest = append(rest, ordered[from+1:]...)

	out := make([]Milestone, 0, len(ordered))
	out = append(out, rest[:index]...)
	out = append(out, moved)
	out = append(out, rest[index:]...)
	for i := range out {
		out[i].OrderIndex = i
	}
	return out, nil
}
