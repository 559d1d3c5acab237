package bootstrap_test

import (
	"context"
	"testing"

	"lockedin/internal/bootstrap"
	goaldto "lockedin/internal/modules/goal/dto"
	"lockedin/internal/platform/config"
	"lockedin/internal/platform/logging"
)

func TestNewWiresSessionsToGoals(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logging.Discard())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()

	goal, err := app.GoalCLI.Create(ctx, goaldto.CreateGoalInput{Title: "Wire it", TargetHours: 2})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	started, err := app.SessionCLI.Start(ctx, goal.ID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	done, err := app.SessionCLI.Complete(ctx, "", "")
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if done.ID != started.ID || done.Status != "completed" {
		t.Fatalf("unexpected completed session: %+v", done)
	}
	if snap := app.Timer.Snapshot(); snap.State != "idle" {
		t.Fatalf("timer should start idle, got %q", snap.State)
	}
}

func TestGatewayNeedsUpstream(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if _, err := bootstrap.Gateway(cfg, logging.Discard()); err == nil {
		t.Fatalf("expected an error without an upstream url")
	}
	cfg.Gateway.UpstreamURL = "http://127.0.0.1:1/complete"
	if _, err := bootstrap.Gateway(cfg, logging.Discard()); err != nil {
		t.Fatalf("gateway: %v", err)
	}
}
