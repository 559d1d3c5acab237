package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lockedin/internal/modules/timer/domain"
	"lockedin/internal/modules/timer/dto"
	timerout "lockedin/internal/modules/timer/port/out"
	"lockedin/internal/modules/timer/usecase"
	"lockedin/internal/platform/clock"
	apperrors "lockedin/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type tickers struct {
	mu  sync.Mutex
	all []*fakeTicker
}

func (ts *tickers) factory(time.Duration) clock.Ticker {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ft := &fakeTicker{ch: make(chan time.Time)}
	ts.all = append(ts.all, ft)
	return ft
}

func (ts *tickers) last(t *testing.T) *fakeTicker {
	t.Helper()
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.all) == 0 {
		t.Fatalf("no ticker started")
	}
	return ts.all[len(ts.all)-1]
}

func (ts *tickers) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.all)
}

func (ft *fakeTicker) fire(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case ft.ch <- time.Time{}:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d not consumed", i+1)
		}
	}
}

type fakeSessions struct {
	mu        sync.Mutex
	n         int
	active    *timerout.ActiveSession
	starts    int
	completed map[string]string
	cancelled []string
	startErr  error
	endErr    error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{completed: map[string]string{}}
}

func (f *fakeSessions) Start(_ context.Context, goalID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return "", f.startErr
	}
	if f.active != nil {
		return "", apperrors.ErrActiveSessionExists
	}
	f.n++
	id := fmt.Sprintf("s-%d", f.n)
	f.active = &timerout.ActiveSession{ID: id, GoalID: goalID}
	return id, nil
}

func (f *fakeSessions) Complete(_ context.Context, sessionID, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.endErr != nil {
		return f.endErr
	}
	if _, dup := f.completed[sessionID]; dup {
		return apperrors.ErrSessionNotActive
	}
	f.completed[sessionID] = notes
	f.active = nil
	return nil
}

func (f *fakeSessions) Cancel(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.endErr != nil {
		return f.endErr
	}
	f.cancelled = append(f.cancelled, sessionID)
	f.active = nil
	return nil
}

func (f *fakeSessions) Active(context.Context) (timerout.ActiveSession, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return timerout.ActiveSession{}, false, nil
	}
	return *f.active, true, nil
}

func (f *fakeSessions) completedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completed)
}

func runController(t *testing.T, sessions *fakeSessions, length time.Duration, clk clock.Clock) (*usecase.Controller, *tickers) {
	t.Helper()
	ts := &tickers{}
	c := usecase.NewController(sessions, usecase.Options{Length: length, Clock: clk, NewTicker: ts.factory})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-errCh
	})
	return c, ts
}

func waitFor(t *testing.T, ch <-chan dto.Snapshot, pred func(dto.Snapshot) bool) dto.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				t.Fatalf("subscription closed")
			}
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot")
		}
	}
}

func TestStartPauseResumeComplete(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	c, ts := runController(t, sessions, 25*time.Minute, nil)
	ctx := context.Background()

	if err := c.Start(ctx, "g-a"); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != "running" || snap.SessionID != "s-1" || snap.Remaining != 25*time.Minute {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()
	first := ts.last(t)
	first.fire(t, 2)
	waitFor(t, ch, func(s dto.Snapshot) bool { return s.Remaining == 25*time.Minute-2*time.Second })

	if err := c.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !first.stopped.Load() {
		t.Fatalf("pause must stop the ticker")
	}
	if got := c.Snapshot(); got.State != "paused" || got.Remaining != 25*time.Minute-2*time.Second {
		t.Fatalf("unexpected paused snapshot %+v", got)
	}
	if err := c.Pause(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := c.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if ts.count() != 2 {
		t.Fatalf("resume should start a fresh ticker")
	}
	ts.last(t).fire(t, 1)
	waitFor(t, ch, func(s dto.Snapshot) bool { return s.Remaining == 25*time.Minute-3*time.Second })

	if err := c.Complete(ctx, "early"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if notes, ok := sessions.completed["s-1"]; !ok || notes != "early" {
		t.Fatalf("expected s-1 completed with notes, got %+v", sessions.completed)
	}
	if got := c.Snapshot(); got.State != "idle" || got.Remaining != 25*time.Minute || got.SessionID != "" || got.LastError != nil {
		t.Fatalf("expected reset to idle, got %+v", got)
	}
	if !ts.last(t).stopped.Load() {
		t.Fatalf("complete must stop the ticker")
	}
}

func TestCountdownCompletesOnce(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	c, ts := runController(t, sessions, 3*time.Second, nil)
	ctx := context.Background()
	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	if err := c.Start(ctx, "g-a"); err != nil {
		t.Fatalf("start: %v", err)
	}
	ticker := ts.last(t)
	ticker.fire(t, 3)
	waitFor(t, ch, func(s dto.Snapshot) bool { return s.State == "idle" && s.SessionID == "" })

	if !ticker.stopped.Load() {
		t.Fatalf("ticker should stop at zero")
	}
	if sessions.completedCount() != 1 {
		t.Fatalf("expected exactly one completion, got %d", sessions.completedCount())
	}
	if got := c.Snapshot(); got.Remaining != 3*time.Second || got.LastError != nil {
		t.Fatalf("unexpected snapshot after expiry %+v", got)
	}
	// stale ticks after the stop are never read
	select {
	case ticker.ch <- time.Time{}:
		t.Fatalf("stopped ticker channel should not be selected")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSecondGoalConflictsAndRendersInactive(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	c, _ := runController(t, sessions, time.Minute, nil)
	ctx := context.Background()

	if err := c.Start(ctx, "g-a"); err != nil {
		t.Fatalf("start a: %v", err)
	}
	err := c.Start(ctx, "g-b")
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if c.ViewFor("g-b") != "inactive" || c.ViewFor("g-a") != "running" {
		t.Fatalf("unexpected views a=%s b=%s", c.ViewFor("g-a"), c.ViewFor("g-b"))
	}
	if sessions.starts != 1 {
		t.Fatalf("conflicting start must not reach storage")
	}
	if got := c.Snapshot(); got.State != "running" || got.GoalID != "g-a" {
		t.Fatalf("running timer disturbed: %+v", got)
	}
}

func TestStorageConflictKeepsIdle(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	sessions.startErr = apperrors.ErrActiveSessionExists
	c, ts := runController(t, sessions, time.Minute, nil)

	err := c.Start(context.Background(), "g-a")
	if !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected storage conflict, got %v", err)
	}
	got := c.Snapshot()
	if got.State != "idle" || !errors.Is(got.LastError, apperrors.ErrConflict) {
		t.Fatalf("expected idle with error, got %+v", got)
	}
	if ts.count() != 0 {
		t.Fatalf("no ticker should start on failure")
	}
}

func TestCancelResetsEvenWhenPersistenceFails(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	c, ts := runController(t, sessions, time.Minute, nil)
	ctx := context.Background()

	if err := c.Start(ctx, "g-a"); err != nil {
		t.Fatalf("start: %v", err)
	}
	boom := apperrors.Persistence("cancel session", errors.New("disk full"))
	sessions.mu.Lock()
	sessions.endErr = boom
	sessions.mu.Unlock()

	if err := c.Cancel(ctx); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	got := c.Snapshot()
	if got.State != "idle" || got.Remaining != time.Minute || got.LastError == nil {
		t.Fatalf("expected idle with surfaced error, got %+v", got)
	}
	if !ts.last(t).stopped.Load() {
		t.Fatalf("cancel must stop the clock")
	}
	if err := c.Cancel(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancel from idle should be invalid, got %v", err)
	}
}

func TestCancelCreditsNothing(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	c, _ := runController(t, sessions, time.Minute, nil)
	ctx := context.Background()

	_ = c.Start(ctx, "g-a")
	_ = c.Pause(ctx)
	if err := c.Cancel(ctx); err != nil {
		t.Fatalf("cancel from paused: %v", err)
	}
	if sessions.completedCount() != 0 || len(sessions.cancelled) != 1 {
		t.Fatalf("expected one cancel and no completion, got %+v", sessions)
	}
}

func TestRunAdoptsStoredSession(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 10, 0, 0, time.UTC)
	sessions := newFakeSessions()
	sessions.active = &timerout.ActiveSession{ID: "s-9", GoalID: "g-a", StartTime: now.Add(-10 * time.Minute)}
	c, _ := runController(t, sessions, 25*time.Minute, &fakeClock{now: now})

	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()
	got := waitFor(t, ch, func(s dto.Snapshot) bool { return s.SessionID == "s-9" })
	if got.State != "paused" || got.Remaining != 15*time.Minute {
		t.Fatalf("unexpected adopted snapshot %+v", got)
	}
	if c.ViewFor("g-b") != "inactive" || c.ViewFor("g-a") != "paused" {
		t.Fatalf("unexpected views after adopt")
	}
	if err := c.Complete(context.Background(), ""); err != nil {
		t.Fatalf("complete adopted: %v", err)
	}
	if _, ok := sessions.completed["s-9"]; !ok {
		t.Fatalf("adopted session not completed")
	}
}

func TestRefreshFollowsSessionsChangedElsewhere(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 10, 0, 0, time.UTC)
	sessions := newFakeSessions()
	c, _ := runController(t, sessions, 25*time.Minute, &fakeClock{now: now})
	ctx := context.Background()

	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if c.ViewFor("g-b") != "idle" {
		t.Fatalf("nothing stored yet, expected idle")
	}

	sessions.mu.Lock()
	sessions.active = &timerout.ActiveSession{ID: "s-cli", GoalID: "g-a", StartTime: now.Add(-5 * time.Minute)}
	sessions.mu.Unlock()
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if c.ViewFor("g-b") != "inactive" || c.ViewFor("g-a") != "paused" {
		t.Fatalf("expected the outside session to be picked up, got %+v", c.Snapshot())
	}
	if got := c.Snapshot(); got.SessionID != "s-cli" || got.Remaining != 20*time.Minute {
		t.Fatalf("unexpected adopted snapshot %+v", got)
	}

	sessions.mu.Lock()
	sessions.active = nil
	sessions.mu.Unlock()
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := c.Snapshot(); got.State != "idle" || got.SessionID != "" {
		t.Fatalf("expected idle once the session ended elsewhere, got %+v", got)
	}
}

func TestRefreshLeavesRunningTimerAlone(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	c, _ := runController(t, sessions, 25*time.Minute, nil)
	ctx := context.Background()

	if err := c.Start(ctx, "g-a"); err != nil {
		t.Fatalf("start: %v", err)
	}
	sessions.mu.Lock()
	sessions.active = nil
	sessions.mu.Unlock()
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := c.Snapshot(); got.State != "running" || got.SessionID != "s-1" {
		t.Fatalf("running timer should be untouched, got %+v", got)
	}
}

func TestCommandsAfterStop(t *testing.T) {
	t.Parallel()
	c := usecase.NewController(newFakeSessions(), usecase.Options{Length: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if err := c.Start(context.Background(), "g"); !errors.Is(err, usecase.ErrStopped) {
		t.Fatalf("expected stopped, got %v", err)
	}
	if c.Run(context.Background()) == nil {
		t.Fatalf("second run should fail")
	}
}
