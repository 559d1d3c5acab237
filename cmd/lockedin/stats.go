package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lockedin/internal/bootstrap"
)

func newStatsCmd(g *globals) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Focus analytics"}

	today := &cobra.Command{
		Use:   "today",
		Short: "Hours focused today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				hours, progress, err := app.AnalyticsCLI.Today(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "today=%s hours=%.2f goals=%d streak=%d\n", progress.Date, hours, progress.GoalsWorkedOn, progress.StreakCount)
				return nil
			})
		},
	}

	streak := &cobra.Command{
		Use:   "streak",
		Short: "Current day streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				count, err := app.AnalyticsCLI.Streak(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak=%d\n", count)
				return nil
			})
		},
	}

	week := &cobra.Command{
		Use:   "week",
		Short: "Totals for the last seven days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AnalyticsCLI.Week(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "total=%.1fh avg=%.1fh/day best=%s\n", out.TotalHours, out.AvgPerDay, out.MostProductiveDay)
				for _, day := range out.Days {
					_, _ = fmt.Fprintf(w, "%s\t%.0fmin\n", day.Date, day.Minutes)
				}
				return nil
			})
		},
	}

	var reportPath string
	report := &cobra.Command{
		Use:   "report",
		Short: "Write the weekly PDF report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				path := reportPath
				if path == "" {
					path = filepath.Join(app.Config.DataDir, "weekly-report.pdf")
				}
				if err := app.AnalyticsCLI.Report(ctx, path); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report written: %s\n", path)
				return nil
			})
		},
	}
	report.Flags().StringVar(&reportPath, "out", "", "output path (default <data-dir>/weekly-report.pdf)")

	stats.AddCommand(today, streak, week, report)
	return stats
}
