package domain_test

import (
	"errors"
	"testing"
	"time"

	"lockedin/internal/modules/timer/domain"
	apperrors "lockedin/internal/platform/errors"
)

func TestTimerTransitions(t *testing.T) {
	t.Parallel()
	tm := domain.New(0)
	if tm.Length != domain.DefaultLength || tm.Remaining != domain.DefaultLength || tm.State != domain.StateIdle {
		t.Fatalf("unexpected new timer %+v", tm)
	}
	if _, err := tm.Pause(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pause from idle should be invalid, got %v", err)
	}
	if _, err := tm.Finish(domain.StateCancelling); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("cancel from idle should be invalid, got %v", err)
	}

	tm = tm.Started("g-1", "s-1")
	paused, err := tm.Pause()
	if err != nil || paused.State != domain.StatePaused {
		t.Fatalf("pause: %+v %v", paused, err)
	}
	if _, err := paused.Pause(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double pause should be invalid, got %v", err)
	}
	if after, expired := paused.Tick(); expired || after.Remaining != paused.Remaining {
		t.Fatalf("paused timer must not tick")
	}
	running, err := paused.Resume()
	if err != nil || running.State != domain.StateRunning {
		t.Fatalf("resume: %+v %v", running, err)
	}
	if _, err := running.Finish(domain.StateRunning); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("finish into running should be invalid, got %v", err)
	}
	done, err := running.Finish(domain.StateCompleting)
	if err != nil || done.State != domain.StateCompleting {
		t.Fatalf("finish: %+v %v", done, err)
	}
	reset := done.Reset()
	if reset.State != domain.StateIdle || reset.GoalID != "" || reset.Remaining != domain.DefaultLength {
		t.Fatalf("unexpected reset %+v", reset)
	}
}

func TestTickExpiresAtZero(t *testing.T) {
	t.Parallel()
	length := 3 * time.Second
	tm := domain.New(length).Started("g-1", "s-1")
	var expired bool
	for i := 0; i < 2; i++ {
		tm, expired = tm.Tick()
		if expired {
			t.Fatalf("expired early at tick %d", i+1)
		}
	}
	tm, expired = tm.Tick()
	if !expired || tm.Remaining != 0 {
		t.Fatalf("expected expiry at zero, got %+v %v", tm, expired)
	}
}

func TestCheckStartAndViews(t *testing.T) {
	t.Parallel()
	tm := domain.New(time.Minute)
	if err := tm.CheckStart("a"); err != nil {
		t.Fatalf("idle timer should accept start: %v", err)
	}
	if tm.ViewFor("a") != domain.ViewIdle {
		t.Fatalf("expected idle view")
	}
	tm = tm.Started("a", "s-1")
	if err := tm.CheckStart("b"); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for other goal, got %v", err)
	}
	if err := tm.CheckStart("a"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for same goal, got %v", err)
	}
	if tm.ViewFor("a") != domain.ViewRunning || tm.ViewFor("b") != domain.ViewInactive {
		t.Fatalf("unexpected views %s %s", tm.ViewFor("a"), tm.ViewFor("b"))
	}
	tm, _ = tm.Pause()
	if tm.ViewFor("a") != domain.ViewPaused || tm.ViewFor("b") != domain.ViewInactive {
		t.Fatalf("unexpected paused views")
	}
}

func TestAdoptClampsRemaining(t *testing.T) {
	t.Parallel()
	tm := domain.New(25*time.Minute).Adopt("g", "s", 10*time.Minute+500*time.Millisecond)
	if tm.State != domain.StatePaused || tm.Remaining != 15*time.Minute {
		t.Fatalf("unexpected adopted timer %+v", tm)
	}
	over := domain.New(25*time.Minute).Adopt("g", "s", time.Hour)
	if over.Remaining != time.Second {
		t.Fatalf("expected one second floor, got %s", over.Remaining)
	}
}
