package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lockedin/internal/bootstrap"
	goaldto "lockedin/internal/modules/goal/dto"
)

const dateLayout = "2006-01-02"

func newGoalCmd(g *globals) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage goals"}

	var (
		description, deadline, color, status string
		targetHours                          float64
		quiet                                bool
	)
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := parseDeadline(deadline)
			if err != nil {
				return err
			}
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.Create(ctx, goaldto.CreateGoalInput{
					Title:       args[0],
					Description: description,
					TargetHours: targetHours,
					Deadline:    due,
					Color:       color,
					Status:      status,
				})
				if err != nil {
					return err
				}
				if quiet {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.ID)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal created: %s title=%q target=%.1fh\n", out.ID, out.Title, out.TargetHours)
				return nil
			})
		},
	}
	create.Flags().Float64Var(&targetHours, "target-hours", 0, "hours needed to reach the goal")
	create.Flags().StringVar(&description, "description", "", "description")
	create.Flags().StringVar(&deadline, "deadline", "", "deadline as YYYY-MM-DD")
	create.Flags().StringVar(&color, "color", "", "display color (hex)")
	create.Flags().StringVar(&status, "status", "", "active|completed|archived")
	create.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the goal id")
	_ = create.MarkFlagRequired("target-hours")

	var activeOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				goals, err := app.GoalCLI.List(ctx, activeOnly)
				if err != nil {
					return err
				}
				if len(goals) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
					return nil
				}
				for _, item := range goals {
					printGoalLine(cmd.OutOrStdout(), item)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&activeOnly, "active", false, "only active goals")

	show := &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal and its milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.Get(ctx, args[0])
				if err != nil {
					return err
				}
				milestones, err := app.GoalCLI.ListMilestones(ctx, out.ID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "id=%s\ntitle=%q\nstatus=%s\n", out.ID, out.Title, out.Status)
				if out.Description != "" {
					_, _ = fmt.Fprintf(w, "description=%q\n", out.Description)
				}
				_, _ = fmt.Fprintf(w, "hours=%.2f/%.1f progress=%d%%\n", out.HoursLogged, out.TargetHours, out.Progress)
				_, _ = fmt.Fprintf(w, "efficiency=%s\n", formatEfficiency(out.Efficiency))
				if out.Deadline != nil {
					_, _ = fmt.Fprintf(w, "deadline=%s\n", out.Deadline.Format(dateLayout))
				}
				for _, m := range milestones {
					printMilestoneLine(w, m)
				}
				return nil
			})
		},
	}

	var (
		newTitle, newDescription, newDeadline, newStatus, newColor string
		newTarget                                                  float64
		clearDeadline                                              bool
	)
	update := &cobra.Command{
		Use:   "update <goal-id>",
		Short: "Update goal fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := goaldto.UpdateGoalInput{ID: args[0], ClearDeadline: clearDeadline}
			flags := cmd.Flags()
			if flags.Changed("title") {
				input.Title = &newTitle
			}
			if flags.Changed("description") {
				input.Description = &newDescription
			}
			if flags.Changed("target-hours") {
				input.TargetHours = &newTarget
			}
			if flags.Changed("status") {
				input.Status = &newStatus
			}
			if flags.Changed("color") {
				input.Color = &newColor
			}
			if flags.Changed("deadline") {
				due, err := parseDeadline(newDeadline)
				if err != nil {
					return err
				}
				input.Deadline = due
			}
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal updated: %s title=%q status=%s\n", out.ID, out.Title, out.Status)
				return nil
			})
		},
	}
	update.Flags().StringVar(&newTitle, "title", "", "new title")
	update.Flags().StringVar(&newDescription, "description", "", "new description")
	update.Flags().Float64Var(&newTarget, "target-hours", 0, "new target hours")
	update.Flags().StringVar(&newDeadline, "deadline", "", "new deadline as YYYY-MM-DD")
	update.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "remove the deadline")
	update.Flags().StringVar(&newStatus, "status", "", "active|completed|archived")
	update.Flags().StringVar(&newColor, "color", "", "display color (hex)")

	del := &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal with its milestones and sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal deleted: %s\n", args[0])
				return nil
			})
		},
	}

	recalc := &cobra.Command{
		Use:   "recalc <goal-id>",
		Short: "Recompute a goal's efficiency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.Recalculate(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "efficiency=%s\n", formatEfficiency(out.Efficiency))
				return nil
			})
		},
	}

	var exportDir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write one markdown note per goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				dir := exportDir
				if dir == "" {
					dir = app.Config.NotesDir
				}
				out, err := app.GoalCLI.ExportNotes(ctx, dir)
				if err != nil {
					return err
				}
				for _, path := range out.Paths {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes\n", len(out.Paths))
				return nil
			})
		},
	}
	export.Flags().StringVar(&exportDir, "dir", "", "target directory (default notes_dir)")

	goal.AddCommand(create, list, show, update, del, recalc, export)
	return goal
}

func newMilestoneCmd(g *globals) *cobra.Command {
	milestone := &cobra.Command{Use: "milestone", Short: "Manage goal milestones"}

	add := &cobra.Command{
		Use:   "add <goal-id> <title>",
		Short: "Append a milestone to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.AddMilestone(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "milestone added: %s index=%d\n", out.ID, out.OrderIndex)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list <goal-id>",
		Short: "List milestones in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				milestones, err := app.GoalCLI.ListMilestones(ctx, args[0])
				if err != nil {
					return err
				}
				if len(milestones) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no milestones")
					return nil
				}
				for _, m := range milestones {
					printMilestoneLine(cmd.OutOrStdout(), m)
				}
				return nil
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <milestone-id> <title>",
		Short: "Rename a milestone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.RenameMilestone(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "milestone renamed: %s title=%q\n", out.ID, out.Title)
				return nil
			})
		},
	}

	reorder := &cobra.Command{
		Use:   "reorder <milestone-id> <index>",
		Short: "Move a milestone to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be an integer: %w", err)
			}
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				milestones, err := app.GoalCLI.ReorderMilestone(ctx, args[0], index)
				if err != nil {
					return err
				}
				for _, m := range milestones {
					printMilestoneLine(cmd.OutOrStdout(), m)
				}
				return nil
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete <milestone-id>",
		Short: "Mark a milestone complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalCLI.CompleteMilestone(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "milestone completed: %s\n", out.ID)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <milestone-id>",
		Short: "Delete a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.DeleteMilestone(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "milestone deleted: %s\n", args[0])
				return nil
			})
		},
	}

	milestone.AddCommand(add, list, rename, reorder, complete, del)
	return milestone
}

// parseDeadline reads YYYY-MM-DD as the end of that local day.
func parseDeadline(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("--deadline must be YYYY-MM-DD: %w", err)
	}
	due := day.Add(24*time.Hour - time.Second)
	return &due, nil
}

func formatEfficiency(eff *float64) string {
	if eff == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *eff)
}

func printGoalLine(w io.Writer, g goaldto.GoalOutput) {
	_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f/%.1fh\t%d%%\t%s\n", g.ID, g.Status, g.HoursLogged, g.TargetHours, g.Progress, g.Title)
}

func printMilestoneLine(w io.Writer, m goaldto.MilestoneOutput) {
	mark := " "
	if m.Completed {
		mark = "x"
	}
	_, _ = fmt.Fprintf(w, "%d. [%s] %s (%s)\n", m.OrderIndex, mark, m.Title, m.ID)
}
