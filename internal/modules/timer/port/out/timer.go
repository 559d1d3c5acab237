package out

import (
	"context"
	"time"
)

type ActiveSession struct {
	ID        string
	GoalID    string
	StartTime time.Time
}

// SessionGateway persists the sessions the timer drives.
type SessionGateway interface {
	Start(ctx context.Context, goalID string) (string, error)
	Complete(ctx context.Context, sessionID, notes string) error
	Cancel(ctx context.Context, sessionID string) error
	// Active reports the stored active session, if any.
	Active(ctx context.Context) (ActiveSession, bool, error)
}
