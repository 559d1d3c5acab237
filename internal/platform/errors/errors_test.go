package apperrors_test

import (
	"database/sql"
	"errors"
	"testing"

	apperrors "lockedin/internal/platform/errors"
)

func TestDerivedErrorsMatchTheirKind(t *testing.T) {
	t.Parallel()
	cases := map[error]error{
		apperrors.ErrActiveSessionExists: apperrors.ErrConflict,
		apperrors.ErrSessionNotActive:    apperrors.ErrConflict,
		apperrors.ErrNoActiveSession:     apperrors.ErrNotFound,
		apperrors.ErrDuplicateTitle:      apperrors.ErrValidation,
		apperrors.ErrMilestoneCompleted:  apperrors.ErrValidation,
	}
	for err, kind := range cases {
		if !errors.Is(err, kind) {
			t.Fatalf("expected %v to match %v", err, kind)
		}
	}
}

func TestPersistenceWrapsCauseAndKind(t *testing.T) {
	t.Parallel()
	err := apperrors.Persistence("insert goal", sql.ErrConnDone)
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence kind, got %v", err)
	}
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	var pe *apperrors.PersistenceError
	if !errors.As(err, &pe) || pe.Op != "insert goal" {
		t.Fatalf("expected PersistenceError with op, got %#v", err)
	}
	if apperrors.Persistence("noop", nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
	notFound := apperrors.NotFound("goal", "g-1")
	if got := apperrors.Persistence("select goal", notFound); got != notFound {
		t.Fatalf("kinded errors must pass through, got %v", got)
	}
}
