package out

import (
	"context"

	"lockedin/internal/modules/goal/domain"
)

type GoalStore interface {
	Insert(ctx context.Context, goal domain.Goal) error
	Update(ctx context.Context, goal domain.Goal) error
	FindByID(ctx context.Context, id string) (domain.Goal, error)
	// FindByTitle returns apperrors.ErrNotFound when no goal has the title.
	FindByTitle(ctx context.Context, title string) (domain.Goal, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Goal, error)
	Delete(ctx context.Context, id string) error
}

type MilestoneStore interface {
	Insert(ctx context.Context, milestone domain.Milestone) error
	Update(ctx context.Context, milestone domain.Milestone) error
	FindByID(ctx context.Context, id string) (domain.Milestone, error)
	ListByGoal(ctx context.Context, goalID string) ([]domain.Milestone, error)
	Delete(ctx context.Context, id string) error
}

// NoteWriter renders a goal into a markdown note and returns its path.
type NoteWriter interface {
	Write(ctx context.Context, dir string, goal domain.Goal, milestones []domain.Milestone) (string, error)
}
