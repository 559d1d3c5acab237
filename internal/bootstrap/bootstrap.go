package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "lockedin/internal/modules/analytics/adapter/in"
	analyticsoutadapter "lockedin/internal/modules/analytics/adapter/out"
	analyticsservice "lockedin/internal/modules/analytics/service"
	analyticsusecase "lockedin/internal/modules/analytics/usecase"
	assistantinadapter "lockedin/internal/modules/assistant/adapter/in"
	assistantoutadapter "lockedin/internal/modules/assistant/adapter/out"
	assistantservice "lockedin/internal/modules/assistant/service"
	assistantusecase "lockedin/internal/modules/assistant/usecase"
	goalinadapter "lockedin/internal/modules/goal/adapter/in"
	goaloutadapter "lockedin/internal/modules/goal/adapter/out"
	goalservice "lockedin/internal/modules/goal/service"
	goalusecase "lockedin/internal/modules/goal/usecase"
	sessioninadapter "lockedin/internal/modules/session/adapter/in"
	sessionoutadapter "lockedin/internal/modules/session/adapter/out"
	sessionservice "lockedin/internal/modules/session/service"
	sessionusecase "lockedin/internal/modules/session/usecase"
	timeroutadapter "lockedin/internal/modules/timer/adapter/out"
	timerusecase "lockedin/internal/modules/timer/usecase"
	"lockedin/internal/platform/clock"
	"lockedin/internal/platform/config"
	"lockedin/internal/platform/id"
	"lockedin/internal/platform/sqlite"
	uiapp "lockedin/internal/ui/app"
)

type App struct {
	GoalCLI      goalinadapter.CLIHandler
	SessionCLI   sessioninadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler
	Timer        *timerusecase.Controller
	Config       config.Config

	db *sqlite.DB
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(clk, ids,
		goaloutadapter.NewSQLiteGoalStore(db),
		goaloutadapter.NewSQLiteMilestoneStore(db),
		goaloutadapter.NewVaultNoteWriter(),
	), db)

	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(clk, ids,
		analyticsoutadapter.NewSQLiteProgressStore(db),
		analyticsoutadapter.NewSQLiteSessionReader(db),
		analyticsoutadapter.NewPDFReportWriter(),
	), db)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionoutadapter.NewSQLiteSessionStore(db)),
		sessionoutadapter.NewGoalLedgerAdapter(goalUC),
		sessionoutadapter.NewProgressRecorderAdapter(analyticsUC),
		db,
		logger.With("module", "session"),
	)

	timer := timerusecase.NewController(timeroutadapter.NewSessionGatewayAdapter(sessionUC), timerusecase.Options{
		Length: cfg.SessionLength,
		Clock:  clk,
		Logger: logger.With("module", "timer"),
	})

	assistantUC := assistantusecase.NewInteractor(assistantservice.NewAssistantService(
		assistantoutadapter.NewGoalSourceAdapter(goalUC),
		assistantoutadapter.NewSessionSourceAdapter(sessionUC),
		assistantoutadapter.NewDeviceFileStore(cfg.DataDir),
		assistantoutadapter.NewHTTPChatClient(cfg.Assistant.URL, nil),
		cfg.Assistant.Timeout,
	))

	return &App{
		GoalCLI:      goalinadapter.NewCLIHandler(goalUC),
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		AssistantCLI: assistantinadapter.NewCLIHandler(assistantUC),
		Timer:        timer,
		Config:       cfg,
		db:           db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// RunFocus drives the timer screen. The controller lives as long as the
// program does.
func (a *App) RunFocus(ctx context.Context, focus uiapp.Focus) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Timer.Run(runCtx) }()

	model := uiapp.NewModel(a.GoalCLI, a.Timer, a.AnalyticsCLI, focus)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(runCtx))
	_, runErr := program.Run()

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return errors.Join(runErr, err)
	}
	// A signal on the parent context is a normal way to leave.
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}

// Gateway builds the chat gateway handler backed by the configured upstream.
func Gateway(cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	if cfg.Gateway.UpstreamURL == "" {
		return nil, errors.New("gateway.upstream_url is not set (LOCKEDIN_GATEWAY_UPSTREAM_URL)")
	}
	coach := assistantusecase.NewCoachInteractor(assistantservice.NewCoachService(
		assistantoutadapter.NewHTTPCompleter(cfg.Gateway.UpstreamURL, nil),
		cfg.Gateway.UpstreamTimeout,
	))
	return assistantinadapter.NewRouter(coach, assistantinadapter.RouterOptions{
		RateLimit:  cfg.Gateway.RateLimit,
		RateWindow: cfg.Gateway.RateWindow,
	}, logger), nil
}

// ServeGateway runs the chat gateway on cfg.Gateway.Addr until ctx ends.
func ServeGateway(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	handler, err := Gateway(cfg, logger)
	if err != nil {
		return err
	}
	return assistantinadapter.Serve(ctx, cfg.Gateway.Addr, handler, logger)
}
