package tx

import "context"

// Manager wraps transactional boundaries for multi-adapter operations.
// Calls made with the context passed to fn join the same transaction.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
