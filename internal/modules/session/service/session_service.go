package service

import (
	"context"
	"errors"
	"strings"

	"lockedin/internal/modules/session/domain"
	sessionout "lockedin/internal/modules/session/port/out"
	"lockedin/internal/platform/clock"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

func (s *SessionService) Start(ctx context.Context, goalID string) (domain.FocusSession, error) {
	goalID = strings.TrimSpace(goalID)
	if goalID == "" {
		return domain.FocusSession{}, apperrors.Invalid("goal id is required")
	}
	_, err := s.store.FindActive(ctx)
	if err == nil {
		return domain.FocusSession{}, apperrors.ErrActiveSessionExists
	}
	if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.FocusSession{}, err
	}
	session := domain.FocusSession{
		ID:        s.idGen.New(),
		GoalID:    goalID,
		StartTime: s.clock.Now(),
		Status:    domain.StatusActive,
	}
	if err := s.store.Insert(ctx, session); err != nil {
		return domain.FocusSession{}, err
	}
	return session, nil
}

func (s *SessionService) Complete(ctx context.Context, id, notes string) (domain.FocusSession, error) {
	session, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.FocusSession{}, err
	}
	done, err := session.Complete(s.clock.Now(), strings.TrimSpace(notes))
	if err != nil {
		return domain.FocusSession{}, err
	}
	if err := s.store.Update(ctx, done); err != nil {
		return domain.FocusSession{}, err
	}
	return done, nil
}

func (s *SessionService) Cancel(ctx context.Context, id string) (domain.FocusSession, error) {
	session, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.FocusSession{}, err
	}
	cancelled, err := session.Cancel(s.clock.Now())
	if err != nil {
		return domain.FocusSession{}, err
	}
	if err := s.store.Update(ctx, cancelled); err != nil {
		return domain.FocusSession{}, err
	}
	return cancelled, nil
}

func (s *SessionService) Active(ctx context.Context) (domain.FocusSession, error) {
	return s.store.FindActive(ctx)
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.FocusSession, error) {
	return s.store.FindByID(ctx, id)
}

func (s *SessionService) ListByGoal(ctx context.Context, goalID string) ([]domain.FocusSession, error) {
	return s.store.ListByGoal(ctx, goalID)
}

func (s *SessionService) Recent(ctx context.Context, limit int) ([]domain.FocusSession, error) {
	if limit <= 0 {
		limit = domain.RecentLimit
	}
	return s.store.RecentCompleted(ctx, limit)
}
