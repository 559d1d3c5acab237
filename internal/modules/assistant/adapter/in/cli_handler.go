package in

import (
	"context"

	"lockedin/internal/modules/assistant/dto"
	assistantin "lockedin/internal/modules/assistant/port/in"
)

type CLIHandler struct {
	usecase assistantin.Usecase
}

func NewCLIHandler(usecase assistantin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Ask(ctx context.Context, message string) (string, error) {
	out, err := h.usecase.Ask(ctx, dto.AskInput{Message: message})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.ChatRequest, error) {
	return h.usecase.BuildSnapshot(ctx)
}
