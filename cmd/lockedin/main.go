package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"lockedin/internal/bootstrap"
	"lockedin/internal/platform/config"
	"lockedin/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	dataDir string
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "lockedin",
		Short:         "Track goals and focus sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "data directory (default $LOCKEDIN_DATA_DIR or $XDG_DATA_HOME/lockedin)")

	root.AddCommand(newGoalCmd(g))
	root.AddCommand(newMilestoneCmd(g))
	root.AddCommand(newSessionCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newFocusCmd(g))
	root.AddCommand(newAskCmd(g))
	root.AddCommand(newServeCmd(g))
	return root
}

func (g *globals) loadConfig() (config.Config, error) {
	dir, err := config.ResolveDataDir(g.dataDir)
	if err != nil {
		return config.Config{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return config.Config{}, fmt.Errorf("create data dir: %w", err)
	}
	return config.Load(dir)
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	return logging.New(w, cfg.LogLevel, cfg.LogFormat)
}

// withApp opens the app for the duration of fn. Logs go to stderr so stdout
// stays scriptable.
func (g *globals) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

func newConfigCmd(g *globals) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration commands"}

	var format string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "yaml" && format != "toml" {
				return fmt.Errorf("--format must be yaml or toml, got %q", format)
			}
			dir, err := config.ResolveDataDir(g.dataDir)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, config.FileName+"."+format)
			if err := config.WriteDefaults(dir, path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&format, "format", "yaml", "file format: yaml|toml")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := cfg.ConfigFile
			if source == "" {
				source = "(defaults)"
			}
			_, _ = fmt.Fprintf(out, "config_file=%s\n", source)
			_, _ = fmt.Fprintf(out, "data_dir=%s\ndb_path=%s\nnotes_dir=%s\n", cfg.DataDir, cfg.DBPath, cfg.NotesDir)
			_, _ = fmt.Fprintf(out, "session_length=%s\n", cfg.SessionLength)
			_, _ = fmt.Fprintf(out, "log.level=%s log.format=%s\n", cfg.LogLevel, cfg.LogFormat)
			_, _ = fmt.Fprintf(out, "assistant.url=%s assistant.timeout=%s\n", cfg.Assistant.URL, cfg.Assistant.Timeout)
			_, _ = fmt.Fprintf(out, "gateway.addr=%s gateway.rate_limit=%d/%s\n", cfg.Gateway.Addr, cfg.Gateway.RateLimit, cfg.Gateway.RateWindow)
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, show)
	return cfgCmd
}
