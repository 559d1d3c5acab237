package in

import (
	"context"

	sessiondto "lockedin/internal/modules/session/dto"
	sessionin "lockedin/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, goalID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{GoalID: goalID})
}

// Complete finishes sessionID, or the active session when it is empty.
func (h CLIHandler) Complete(ctx context.Context, sessionID, notes string) (sessiondto.SessionOutput, error) {
	id, err := h.resolve(ctx, sessionID)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return h.usecase.Complete(ctx, sessiondto.CompleteInput{SessionID: id, Notes: notes})
}

func (h CLIHandler) Cancel(ctx context.Context, sessionID string) (sessiondto.SessionOutput, error) {
	id, err := h.resolve(ctx, sessionID)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return h.usecase.Cancel(ctx, sessiondto.CancelInput{SessionID: id})
}

func (h CLIHandler) GetActive(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) List(ctx context.Context, goalID string, limit int) ([]sessiondto.SessionOutput, error) {
	if goalID != "" {
		return h.usecase.ListByGoal(ctx, goalID)
	}
	return h.usecase.Recent(ctx, limit)
}

func (h CLIHandler) resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}
	active, err := h.usecase.GetActive(ctx)
	if err != nil {
		return "", err
	}
	return active.ID, nil
}
