package out

import (
	"context"

	"lockedin/internal/modules/assistant/domain"
	"lockedin/internal/modules/assistant/dto"
)

type GoalSource interface {
	ActiveGoals(ctx context.Context) ([]domain.GoalSummary, error)
}

type SessionSource interface {
	RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error)
}

type DeviceStore interface {
	DeviceID(ctx context.Context) (string, error)
}

type ChatClient interface {
	Send(ctx context.Context, deviceID string, req dto.ChatRequest) (dto.ChatResponse, error)
}

// Completer is the upstream text-completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
