package apperrors

import (
	"errors"
	"fmt"
)

// Kinds. Every error surfaced by a usecase matches exactly one of these via errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

var (
	ErrActiveSessionExists = fmt.Errorf("%w: a focus session is already active", ErrConflict)
	ErrSessionNotActive    = fmt.Errorf("%w: session is no longer active", ErrConflict)
	ErrNoActiveSession     = fmt.Errorf("%w: no active session", ErrNotFound)
	ErrDuplicateTitle      = fmt.Errorf("%w: a goal with this title already exists", ErrValidation)
	ErrMilestoneCompleted  = fmt.Errorf("%w: milestone already completed", ErrValidation)
)

// Assistant failures sit outside the storage taxonomy.
var (
	ErrAssistantTimeout     = errors.New("assistant timed out")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// Invalid builds a validation error carrying a field-level message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound builds a not-found error for the given entity and id.
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, id)
}

// PersistenceError wraps an underlying storage failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Persistence wraps err as a PersistenceError. Errors that already carry a
// kind are returned unchanged.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kinded(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// Kinded reports whether err already matches one of the error kinds.
func Kinded(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrPersistence)
}
