package usecase

import (
	"context"

	"lockedin/internal/modules/assistant/dto"
	assistantin "lockedin/internal/modules/assistant/port/in"
	"lockedin/internal/modules/assistant/service"
)

type Interactor struct {
	svc *service.AssistantService
}

func NewInteractor(svc *service.AssistantService) assistantin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) BuildSnapshot(ctx context.Context) (dto.ChatRequest, error) {
	return i.svc.BuildSnapshot(ctx)
}

func (i *Interactor) Ask(ctx context.Context, input dto.AskInput) (dto.AskOutput, error) {
	text, err := i.svc.Ask(ctx, input.Message)
	if err != nil {
		return dto.AskOutput{}, err
	}
	return dto.AskOutput{Message: text}, nil
}

type CoachInteractor struct {
	svc *service.CoachService
}

func NewCoachInteractor(svc *service.CoachService) assistantin.Coach {
	return &CoachInteractor{svc: svc}
}

func (i *CoachInteractor) Answer(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	text, err := i.svc.Answer(ctx, req)
	if err != nil {
		return dto.ChatResponse{}, err
	}
	return dto.ChatResponse{Message: text}, nil
}
