package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lockedin/internal/modules/assistant/domain"
	"lockedin/internal/modules/assistant/dto"
	assistantout "lockedin/internal/modules/assistant/port/out"
	apperrors "lockedin/internal/platform/errors"
)

// DefaultTimeout bounds a whole assistant round trip.
const DefaultTimeout = 30 * time.Second

type AssistantService struct {
	goals    assistantout.GoalSource
	sessions assistantout.SessionSource
	device   assistantout.DeviceStore
	client   assistantout.ChatClient
	timeout  time.Duration
}

func NewAssistantService(goals assistantout.GoalSource, sessions assistantout.SessionSource, device assistantout.DeviceStore, client assistantout.ChatClient, timeout time.Duration) *AssistantService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AssistantService{goals: goals, sessions: sessions, device: device, client: client, timeout: timeout}
}

func (s *AssistantService) BuildSnapshot(ctx context.Context) (dto.ChatRequest, error) {
	goals, err := s.goals.ActiveGoals(ctx)
	if err != nil {
		return dto.ChatRequest{}, err
	}
	sessions, err := s.sessions.RecentSessions(ctx, domain.MaxSessions)
	if err != nil {
		return dto.ChatRequest{}, err
	}
	req := dto.ChatRequest{
		Goals:    make([]dto.GoalContext, 0, len(goals)),
		Sessions: make([]dto.SessionContext, 0, len(sessions)),
	}
	for _, g := range goals {
		req.Goals = append(req.Goals, dto.GoalContext{Title: g.Title, Progress: g.Progress, Status: g.Status})
	}
	for _, sess := range sessions {
		req.Sessions = append(req.Sessions, dto.SessionContext{Date: sess.Date, Duration: sess.Duration})
	}
	return req, nil
}

func (s *AssistantService) Ask(ctx context.Context, message string) (string, error) {
	if err := domain.ValidateMessage(message); err != nil {
		return "", err
	}
	req, err := s.BuildSnapshot(ctx)
	if err != nil {
		return "", err
	}
	req.Message = message
	deviceID, err := s.device.DeviceID(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	resp, err := s.client.Send(ctx, deviceID, req)
	if err != nil {
		return "", classify(ctx, err)
	}
	return resp.Message, nil
}

// classify maps deadline failures to ErrAssistantTimeout and everything
// else to ErrAssistantUnavailable, keeping the cause.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrAssistantTimeout), errors.Is(err, apperrors.ErrAssistantUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", apperrors.ErrAssistantTimeout, err)
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrAssistantUnavailable, err)
	}
}
