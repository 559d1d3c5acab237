package in

import (
	"context"

	"lockedin/internal/modules/assistant/dto"
)

// Usecase is the client side: it packages local data and asks the gateway.
type Usecase interface {
	BuildSnapshot(ctx context.Context) (dto.ChatRequest, error)
	Ask(ctx context.Context, input dto.AskInput) (dto.AskOutput, error)
}

// Coach is the gateway side: it turns a chat request into a completion.
type Coach interface {
	Answer(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error)
}
