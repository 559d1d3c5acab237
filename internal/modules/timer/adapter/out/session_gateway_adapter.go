package out

import (
	"context"
	"errors"

	sessiondto "lockedin/internal/modules/session/dto"
	sessionin "lockedin/internal/modules/session/port/in"
	timerout "lockedin/internal/modules/timer/port/out"
	apperrors "lockedin/internal/platform/errors"
)

type SessionGatewayAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionGatewayAdapter(sessions sessionin.Usecase) timerout.SessionGateway {
	return &SessionGatewayAdapter{sessions: sessions}
}

func (a *SessionGatewayAdapter) Start(ctx context.Context, goalID string) (string, error) {
	out, err := a.sessions.Start(ctx, sessiondto.StartInput{GoalID: goalID})
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func (a *SessionGatewayAdapter) Complete(ctx context.Context, sessionID, notes string) error {
	_, err := a.sessions.Complete(ctx, sessiondto.CompleteInput{SessionID: sessionID, Notes: notes})
	return err
}

func (a *SessionGatewayAdapter) Cancel(ctx context.Context, sessionID string) error {
	_, err := a.sessions.Cancel(ctx, sessiondto.CancelInput{SessionID: sessionID})
	return err
}

func (a *SessionGatewayAdapter) Active(ctx context.Context) (timerout.ActiveSession, bool, error) {
	out, err := a.sessions.GetActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return timerout.ActiveSession{}, false, nil
	}
	if err != nil {
		return timerout.ActiveSession{}, false, err
	}
	return timerout.ActiveSession{ID: out.ID, GoalID: out.GoalID, StartTime: out.StartTime}, true, nil
}
