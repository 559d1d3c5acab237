package domain

import (
	"fmt"
	"time"

	apperrors "lockedin/internal/platform/errors"
)

type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StatePaused     State = "paused"
	StateCompleting State = "completing"
	StateCancelling State = "cancelling"
)

// View is how a single goal's timer screen should render.
type View string

const (
	ViewIdle     View = "idle"
	ViewRunning  View = "running"
	ViewPaused   View = "paused"
	ViewInactive View = "inactive"
)

const (
	DefaultLength = 25 * time.Minute
	TickInterval  = time.Second
)

var ErrInvalidTransition = fmt.Errorf("%w: invalid timer transition", apperrors.ErrValidation)

// Timer is the countdown state. Methods return a new value and never mutate
// the receiver.
type Timer struct {
	State     State
	GoalID    string
	SessionID string
	Remaining time.Duration
	Length    time.Duration
}

func New(length time.Duration) Timer {
	if length <= 0 {
		length = DefaultLength
	}
	return Timer{State: StateIdle, Remaining: length, Length: length}
}

// CheckStart reports whether goalID may start a session now. A timer held
// by another goal is a conflict, not a bad transition.
func (t Timer) CheckStart(goalID string) error {
	switch {
	case t.State == StateIdle:
		return nil
	case t.GoalID != goalID:
		return apperrors.ErrActiveSessionExists
	default:
		return fmt.Errorf("%w: cannot start while %s", ErrInvalidTransition, t.State)
	}
}

func (t Timer) Started(goalID, sessionID string) Timer {
	t.State = StateRunning
	t.GoalID = goalID
	t.SessionID = sessionID
	t.Remaining = t.Length
	return t
}

// Adopt takes over a session that was started elsewhere. It comes back
// paused so the user decides when the clock moves.
func (t Timer) Adopt(goalID, sessionID string, elapsed time.Duration) Timer {
	t.State = StatePaused
	t.GoalID = goalID
	t.SessionID = sessionID
	t.Remaining = max(t.Length-elapsed.Truncate(time.Second), time.Second)
	return t
}

func (t Timer) Pause() (Timer, error) {
	if t.State != StateRunning {
		return t, fmt.Errorf("%w: cannot pause while %s", ErrInvalidTransition, t.State)
	}
	t.State = StatePaused
	return t, nil
}

func (t Timer) Resume() (Timer, error) {
	if t.State != StatePaused {
		return t, fmt.Errorf("%w: cannot resume while %s", ErrInvalidTransition, t.State)
	}
	t.State = StateRunning
	return t, nil
}

// Tick removes one second. expired is true once the countdown hits zero.
func (t Timer) Tick() (next Timer, expired bool) {
	if t.State != StateRunning {
		return t, false
	}
	t.Remaining -= TickInterval
	if t.Remaining <= 0 {
		t.Remaining = 0
		return t, true
	}
	return t, false
}

// Finish moves a live timer into Completing or Cancelling.
func (t Timer) Finish(to State) (Timer, error) {
	if to != StateCompleting && to != StateCancelling {
		return t, fmt.Errorf("%w: %s is not a terminal step", ErrInvalidTransition, to)
	}
	if t.State != StateRunning && t.State != StatePaused {
		return t, fmt.Errorf("%w: nothing to finish while %s", ErrInvalidTransition, t.State)
	}
	t.State = to
	return t, nil
}

func (t Timer) Reset() Timer {
	return New(t.Length)
}

func (t Timer) ViewFor(goalID string) View {
	switch {
	case t.State == StateIdle:
		return ViewIdle
	case t.GoalID != goalID:
		return ViewInactive
	case t.State == StatePaused:
		return ViewPaused
	default:
		return ViewRunning
	}
}
