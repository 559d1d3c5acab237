package service

import (
	"context"
	"time"

	"lockedin/internal/modules/assistant/domain"
	"lockedin/internal/modules/assistant/dto"
	assistantout "lockedin/internal/modules/assistant/port/out"
)

type CoachService struct {
	completer assistantout.Completer
	timeout   time.Duration
}

func NewCoachService(completer assistantout.Completer, timeout time.Duration) *CoachService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CoachService{completer: completer, timeout: timeout}
}

func (s *CoachService) Answer(ctx context.Context, req dto.ChatRequest) (string, error) {
	if err := domain.ValidateMessage(req.Message); err != nil {
		return "", err
	}
	goals := make([]domain.GoalSummary, 0, len(req.Goals))
	for _, g := range req.Goals {
		goals = append(goals, domain.GoalSummary{Title: g.Title, Progress: g.Progress, Status: g.Status})
	}
	sessions := make([]domain.SessionSummary, 0, len(req.Sessions))
	for _, sess := range req.Sessions {
		sessions = append(sessions, domain.SessionSummary{Date: sess.Date, Duration: sess.Duration})
	}
	prompt := domain.BuildPrompt(goals, sessions, domain.Sanitize(req.Message))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", classify(ctx, err)
	}
	return text, nil
}
