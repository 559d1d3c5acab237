package out

import (
	"context"

	"lockedin/internal/modules/assistant/domain"
	assistantout "lockedin/internal/modules/assistant/port/out"
	sessionin "lockedin/internal/modules/session/port/in"
	"lockedin/internal/platform/clock"
)

type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) assistantout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error) {
	sessions, err := a.sessions.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		var minutes float64
		if s.DurationMinutes != nil {
			minutes = *s.DurationMinutes
		}
		out = append(out, domain.SessionSummary{Date: clock.DateKey(s.StartTime), Duration: minutes})
	}
	return out, nil
}
