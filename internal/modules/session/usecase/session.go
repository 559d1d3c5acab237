package usecase

import (
	"context"
	"log/slog"

	"lockedin/internal/modules/session/domain"
	"lockedin/internal/modules/session/dto"
	sessionin "lockedin/internal/modules/session/port/in"
	sessionout "lockedin/internal/modules/session/port/out"
	"lockedin/internal/modules/session/service"
	"lockedin/internal/platform/logging"
	"lockedin/internal/platform/tx"
)

type Interactor struct {
	svc      *service.SessionService
	goals    sessionout.GoalLedger
	progress sessionout.ProgressRecorder
	tx       tx.Manager
	logger   *slog.Logger
}

func NewInteractor(svc *service.SessionService, goals sessionout.GoalLedger, progress sessionout.ProgressRecorder, txm tx.Manager, logger *slog.Logger) sessionin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{svc: svc, goals: goals, progress: progress, tx: txm, logger: logger}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	var session domain.FocusSession
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		if input.GoalID != "" {
			if err := i.goals.Exists(ctx, input.GoalID); err != nil {
				return err
			}
		}
		var err error
		session, err = i.svc.Start(ctx, input.GoalID)
		return err
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.logger.Info("session started", "session_id", session.ID, "goal_id", session.GoalID)
	return toOutput(session), nil
}

// Complete closes the session and credits its minutes to the goal and
// the daily rollup in one transaction.
func (i *Interactor) Complete(ctx context.Context, input dto.CompleteInput) (dto.SessionOutput, error) {
	var session domain.FocusSession
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		session, err = i.svc.Complete(ctx, input.SessionID, input.Notes)
		if err != nil {
			return err
		}
		minutes := *session.DurationMinutes
		if err := i.goals.CreditHours(ctx, session.GoalID, minutes/60); err != nil {
			return err
		}
		if err := i.goals.RecalculateEfficiency(ctx, session.GoalID); err != nil {
			return err
		}
		return i.progress.Record(ctx, session.GoalID, minutes)
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.logger.Info("session completed", "session_id", session.ID, "goal_id", session.GoalID, "minutes", *session.DurationMinutes)
	return toOutput(session), nil
}

func (i *Interactor) Cancel(ctx context.Context, input dto.CancelInput) (dto.SessionOutput, error) {
	var session domain.FocusSession
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		session, err = i.svc.Cancel(ctx, input.SessionID)
		return err
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.logger.Info("session cancelled", "session_id", session.ID, "goal_id", session.GoalID)
	return toOutput(session), nil
}

func (i *Interactor) GetActive(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.svc.Active(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) ListByGoal(ctx context.Context, goalID string) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.ListByGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func (i *Interactor) Recent(ctx context.Context, limit int) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func toOutputs(sessions []domain.FocusSession) []dto.SessionOutput {
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out
}

func toOutput(s domain.FocusSession) dto.SessionOutput {
	return dto.SessionOutput{
		ID:              s.ID,
		GoalID:          s.GoalID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		Notes:           s.Notes,
	}
}
