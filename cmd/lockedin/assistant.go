package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lockedin/internal/bootstrap"
	uiapp "lockedin/internal/ui/app"
)

func newFocusCmd(g *globals) *cobra.Command {
	var goalID string
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run the focus timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			// The alt screen owns the terminal, so logs go to a file.
			logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "lockedin.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer func() { _ = logFile.Close() }()
			logger, err := newLogger(cfg, logFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := bootstrap.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			focus := uiapp.Focus{}
			if goalID != "" {
				goal, err := app.GoalCLI.Get(ctx, goalID)
				if err != nil {
					return err
				}
				focus = uiapp.Focus{GoalID: goal.ID, Title: goal.Title}
			}
			return app.RunFocus(ctx, focus)
		},
	}
	cmd.Flags().StringVar(&goalID, "goal", "", "goal to focus on")
	return cmd
}

func newAskCmd(g *globals) *cobra.Command {
	var showContext bool
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant about your goals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if showContext {
					snapshot, err := app.AssistantCLI.Snapshot(ctx)
					if err != nil {
						return err
					}
					enc := json.NewEncoder(cmd.ErrOrStderr())
					enc.SetIndent("", "  ")
					if err := enc.Encode(snapshot); err != nil {
						return err
					}
				}
				reply, err := app.AssistantCLI.Ask(ctx, message)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderReply(reply))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&showContext, "show-context", false, "print the goal and session context sent along")
	return cmd
}

// renderReply formats markdown for terminals and leaves piped output raw.
func renderReply(reply string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return reply
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return reply
	}
	out, err := r.Render(reply)
	if err != nil {
		return reply
	}
	return strings.TrimRight(out, "\n")
}

func newServeCmd(g *globals) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Gateway.Addr = addr
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return bootstrap.ServeGateway(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default gateway.addr)")
	return cmd
}
