package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lockedin/internal/modules/timer/domain"
	"lockedin/internal/modules/timer/dto"
	timerin "lockedin/internal/modules/timer/port/in"
	timerout "lockedin/internal/modules/timer/port/out"
	"lockedin/internal/platform/clock"
	"lockedin/internal/platform/logging"
)

// ErrStopped is returned by commands sent after Run has returned.
var ErrStopped = errors.New("timer controller stopped")

type commandKind int

const (
	cmdStart commandKind = iota
	cmdPause
	cmdResume
	cmdCancel
	cmdComplete
	cmdRefresh
)

type command struct {
	ctx    context.Context
	kind   commandKind
	goalID string
	notes  string
	reply  chan error
}

type Options struct {
	Length    time.Duration
	Clock     clock.Clock
	NewTicker clock.TickerFactory
	Logger    *slog.Logger
}

// Controller serializes commands and ticks through one goroutine, the only
// writer of the timer state.
type Controller struct {
	sessions  timerout.SessionGateway
	clock     clock.Clock
	newTicker clock.TickerFactory
	logger    *slog.Logger

	cmds    chan command
	done    chan struct{}
	started atomic.Bool

	// loop-owned
	timer   domain.Timer
	ticker  clock.Ticker
	lastErr error

	current atomic.Pointer[dto.Snapshot]

	mu     sync.Mutex
	nextID int
	subs   map[int]chan dto.Snapshot
}

var _ timerin.Controller = (*Controller)(nil)

func NewController(sessions timerout.SessionGateway, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.NewTicker == nil {
		opts.NewTicker = clock.NewSystemTicker
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	c := &Controller{
		sessions:  sessions,
		clock:     opts.Clock,
		newTicker: opts.NewTicker,
		logger:    opts.Logger,
		cmds:      make(chan command),
		done:      make(chan struct{}),
		timer:     domain.New(opts.Length),
		subs:      map[int]chan dto.Snapshot{},
	}
	c.publish()
	return c
}

// Run owns the timer until ctx ends. An active session left by an earlier
// process is adopted in the paused state.
func (c *Controller) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return errors.New("timer controller already running")
	}
	defer close(c.done)
	defer c.stopTicker()

	active, ok, err := c.sessions.Active(ctx)
	if err != nil {
		c.lastErr = err
		c.publish()
	} else if ok {
		c.timer = c.timer.Adopt(active.GoalID, active.ID, c.clock.Now().Sub(active.StartTime))
		c.logger.Info("adopted active session", "session_id", active.ID, "goal_id", active.GoalID)
		c.publish()
	}

	for {
		var ticks <-chan time.Time
		if c.ticker != nil {
			ticks = c.ticker.C()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-c.cmds:
			cmd.reply <- c.handle(cmd)
		case <-ticks:
			c.tick(ctx)
		}
	}
}

func (c *Controller) Start(ctx context.Context, goalID string) error {
	return c.send(ctx, command{kind: cmdStart, goalID: goalID})
}

func (c *Controller) Pause(ctx context.Context) error {
	return c.send(ctx, command{kind: cmdPause})
}

func (c *Controller) Resume(ctx context.Context) error {
	return c.send(ctx, command{kind: cmdResume})
}

func (c *Controller) Cancel(ctx context.Context) error {
	return c.send(ctx, command{kind: cmdCancel})
}

// Complete ends the session early. Only the elapsed time is credited.
func (c *Controller) Complete(ctx context.Context, notes string) error {
	return c.send(ctx, command{kind: cmdComplete, notes: notes})
}

// Refresh reconciles the timer with storage, picking up sessions started or
// finished by another process.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.send(ctx, command{kind: cmdRefresh})
}

func (c *Controller) Snapshot() dto.Snapshot {
	return *c.current.Load()
}

func (c *Controller) ViewFor(goalID string) string {
	s := c.Snapshot()
	t := domain.Timer{State: domain.State(s.State), GoalID: s.GoalID}
	return string(t.ViewFor(goalID))
}

func (c *Controller) Subscribe() (<-chan dto.Snapshot, func()) {
	ch := make(chan dto.Snapshot, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.Snapshot()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
}

func (c *Controller) send(ctx context.Context, cmd command) error {
	cmd.ctx = ctx
	cmd.reply = make(chan error, 1)
	select {
	case c.cmds <- cmd:
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-cmd.reply
}

// ─── loop ────────────────────────────────────────────────────────────────────

func (c *Controller) handle(cmd command) error {
	var err error
	switch cmd.kind {
	case cmdStart:
		err = c.start(cmd.ctx, cmd.goalID)
	case cmdPause:
		var next domain.Timer
		if next, err = c.timer.Pause(); err == nil {
			c.stopTicker()
			c.timer = next
		}
	case cmdResume:
		var next domain.Timer
		if next, err = c.timer.Resume(); err == nil {
			c.timer = next
			c.ticker = c.newTicker(domain.TickInterval)
		}
	case cmdCancel:
		err = c.finish(cmd.ctx, domain.StateCancelling, "")
	case cmdComplete:
		err = c.finish(cmd.ctx, domain.StateCompleting, cmd.notes)
	case cmdRefresh:
		// A quiet poll keeps the last command's error on screen.
		if err = c.refresh(cmd.ctx); err == nil {
			c.publish()
			return nil
		}
	}
	c.lastErr = err
	c.publish()
	return err
}

func (c *Controller) start(ctx context.Context, goalID string) error {
	if err := c.timer.CheckStart(goalID); err != nil {
		return err
	}
	sessionID, err := c.sessions.Start(ctx, goalID)
	if err != nil {
		return err
	}
	c.timer = c.timer.Started(goalID, sessionID)
	c.ticker = c.newTicker(domain.TickInterval)
	return nil
}

// finish stops the clock before persisting. The timer returns to idle even
// when persistence fails.
func (c *Controller) finish(ctx context.Context, to domain.State, notes string) error {
	next, err := c.timer.Finish(to)
	if err != nil {
		return err
	}
	c.stopTicker()
	c.timer = next
	c.publish()

	sessionID := next.SessionID
	if to == domain.StateCompleting {
		err = c.sessions.Complete(ctx, sessionID, notes)
	} else {
		err = c.sessions.Cancel(ctx, sessionID)
	}
	c.timer = c.timer.Reset()
	if err != nil {
		c.logger.Error("persist session end", "session_id", sessionID, "state", string(to), "err", err)
		return err
	}
	c.logger.Info("session ended", "session_id", sessionID, "state", string(to))
	return nil
}

// refresh adopts a stored session while idle and drops a paused one that
// storage no longer holds. A running countdown is left alone.
func (c *Controller) refresh(ctx context.Context) error {
	if c.timer.State == domain.StateRunning {
		return nil
	}
	active, ok, err := c.sessions.Active(ctx)
	if err != nil {
		return err
	}
	switch {
	case c.timer.State == domain.StateIdle && ok:
		c.timer = c.timer.Adopt(active.GoalID, active.ID, c.clock.Now().Sub(active.StartTime))
		c.logger.Info("adopted active session", "session_id", active.ID, "goal_id", active.GoalID)
	case c.timer.State == domain.StatePaused && (!ok || active.ID != c.timer.SessionID):
		c.logger.Info("session finished elsewhere", "session_id", c.timer.SessionID)
		c.timer = c.timer.Reset()
	}
	return nil
}

func (c *Controller) tick(ctx context.Context) {
	next, expired := c.timer.Tick()
	c.timer = next
	if expired {
		c.lastErr = c.finish(ctx, domain.StateCompleting, "")
	}
	c.publish()
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *Controller) publish() {
	snap := dto.Snapshot{
		State:     string(c.timer.State),
		GoalID:    c.timer.GoalID,
		SessionID: c.timer.SessionID,
		Remaining: c.timer.Remaining,
		Length:    c.timer.Length,
		LastError: c.lastErr,
	}
	c.current.Store(&snap)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
