package domain_test

import (
	"errors"
	"testing"
	"time"

	"lockedin/internal/modules/goal/domain"
	apperrors "lockedin/internal/platform/errors"
)

func TestMilestoneCompleteIsOneWay(t *testing.T) {
	t.Parallel()
	m := domain.Milestone{ID: "m-1", GoalID: "g-1", Title: "Read chapter 1"}
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	done, err := m.Complete(at)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil || !done.CompletedAt.Equal(at) {
		t.Fatalf("unexpected completed milestone %+v", done)
	}
	if _, err := done.Complete(at); !errors.Is(err, apperrors.ErrMilestoneCompleted) {
		t.Fatalf("expected already completed error, got %v", err)
	}
}

func TestReorder(t *testing.T) {
	t.Parallel()
	list := []domain.Milestone{{ID: "a"}, {ID: "b", OrderIndex: 1}, {ID: "c", OrderIndex: 2}}
	out, err := domain.Reorder(list, "c", 0)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	want := []string{"c", "a", "b"}
	for i, m := range out {
		if m.ID != want[i] || m.OrderIndex != i {
			t.Fatalf("position %d: got %s/%d", i, m.ID, m.OrderIndex)
		}
	}
	if _, err := domain.Reorder(list, "z", 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := domain.Reorder(list, "a", 3); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected out of range validation error, got %v", err)
	}
}
