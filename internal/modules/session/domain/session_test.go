package domain_test

import (
	"errors"
	"testing"
	"time"

	"lockedin/internal/modules/session/domain"
	apperrors "lockedin/internal/platform/errors"
)

func TestDurationMinutesRounds(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := map[string]float64{
		"25m":    25,
		"25m29s": 25,
		"25m30s": 26,
		"20s":    0,
		"-1m":    0,
	}
	for raw, want := range cases {
		d, err := time.ParseDuration(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got := domain.DurationMinutes(start, start.Add(d)); got != want {
			t.Fatalf("DurationMinutes(%s) = %v, want %v", d, got, want)
		}
	}
}

func TestCompleteAndCancelRequireActive(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := domain.FocusSession{ID: "s-1", GoalID: "g-1", StartTime: start, Status: domain.StatusActive}

	done, err := s.Complete(start.Add(25*time.Minute), "chapter 3")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != domain.StatusCompleted || *done.DurationMinutes != 25 || done.Notes != "chapter 3" || done.EndTime == nil {
		t.Fatalf("unexpected completed session %+v", done)
	}
	if _, err := done.Complete(start.Add(time.Hour), ""); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict on second complete, got %v", err)
	}

	cancelled, err := s.Cancel(start.Add(5 * time.Minute))
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled || cancelled.DurationMinutes != nil {
		t.Fatalf("unexpected cancelled session %+v", cancelled)
	}
	if _, err := cancelled.Cancel(start); !errors.Is(err, apperrors.ErrSessionNotActive) {
		t.Fatalf("expected not active, got %v", err)
	}
}
