package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"lockedin/internal/bootstrap"
	sessiondto "lockedin/internal/modules/session/dto"
)

func newSessionCmd(g *globals) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record focus sessions"}

	var quiet bool
	start := &cobra.Command{
		Use:   "start <goal-id>",
		Short: "Start a focus session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(ctx, args[0])
				if err != nil {
					return err
				}
				if quiet {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.ID)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s goal=%s at=%s\n", out.ID, out.GoalID, out.StartTime.Format(time.RFC3339))
				return nil
			})
		},
	}
	start.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the session id")

	var sessionID, notes string
	complete := &cobra.Command{
		Use:   "complete",
		Short: "Complete the active session and credit its time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Complete(ctx, sessionID, notes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session completed: %s goal=%s duration=%smin\n", out.ID, out.GoalID, formatMinutes(out.DurationMinutes))
				return nil
			})
		},
	}
	complete.Flags().StringVar(&sessionID, "session-id", "", "session id (defaults to the active session)")
	complete.Flags().StringVar(&notes, "notes", "", "session notes")

	var cancelID string
	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the active session without crediting time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Cancel(ctx, cancelID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session cancelled: %s duration=%smin\n", out.ID, formatMinutes(out.DurationMinutes))
				return nil
			})
		},
	}
	cancel.Flags().StringVar(&cancelID, "session-id", "", "session id (defaults to the active session)")

	active := &cobra.Command{
		Use:   "active",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.GetActive(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active session: %s goal=%s since=%s\n", out.ID, out.GoalID, out.StartTime.Format(time.RFC3339))
				return nil
			})
		},
	}

	var goalID string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions for a goal, or recent completed sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(ctx, goalID, limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					printSessionLine(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&goalID, "goal", "", "goal id (all sessions of that goal)")
	list.Flags().IntVar(&limit, "limit", 10, "number of recent completed sessions")

	session.AddCommand(start, complete, cancel, active, list)
	return session
}

func formatMinutes(minutes *float64) string {
	if minutes == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *minutes)
}

func printSessionLine(w io.Writer, s sessiondto.SessionOutput) {
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%smin\t%s\n", s.ID, s.Status, s.StartTime.Format(time.RFC3339), formatMinutes(s.DurationMinutes), s.GoalID)
}
