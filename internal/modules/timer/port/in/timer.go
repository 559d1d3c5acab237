package in

import (
	"context"

	"lockedin/internal/modules/timer/dto"
)

// Controller is the single owner of the countdown. Commands block until the
// event loop has applied them.
type Controller interface {
	Start(ctx context.Context, goalID string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Cancel(ctx context.Context) error
	Complete(ctx context.Context, notes string) error
	// Refresh picks up sessions started or ended outside this controller.
	Refresh(ctx context.Context) error
	Snapshot() dto.Snapshot
	// Subscribe delivers the latest snapshot after every change. Slow readers
	// only miss intermediate values.
	Subscribe() (<-chan dto.Snapshot, func())
	ViewFor(goalID string) string
}
