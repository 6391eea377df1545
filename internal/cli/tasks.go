package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/core/domain"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a day with the day total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := domain.ParseDate(date)
				if err != nil {
					return err
				}
				day = parsed
			}

			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				listing, err := a.tasks.ListForDate(ctx, day)
				if err != nil {
					return err
				}
				return printListing(cmd.OutOrStdout(), listing)
			})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to list as YYYY-MM-DD (default today)")
	return cmd
}

func printListing(out io.Writer, listing domain.DayListing) error {
	if len(listing.Tasks) == 0 {
		fmt.Fprintf(out, "No tasks on %s\n", domain.FormatDate(listing.Date))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tISSUE\tSTATE\tSTART\tEND\tDURATION\tSYNCED")
	for _, task := range listing.Tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Name,
			valueOr(task.IssueKey, "-"),
			task.State,
			clockTime(task.StartTime),
			clockTime(task.EndTime),
			domain.FormatDuration(task.Duration),
			yesNo(task.Synced),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal for %s: %s\n", domain.FormatDate(listing.Date), domain.FormatDuration(listing.TotalHours))
	return nil
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				task, err := a.tasks.GetTask(ctx, taskID)
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), task)
			})
		},
	}
}

func printTask(out io.Writer, task domain.Task) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", task.ID)
	fmt.Fprintf(w, "Name:\t%s\n", task.Name)
	fmt.Fprintf(w, "State:\t%s\n", task.State)
	fmt.Fprintf(w, "Issue:\t%s\n", valueOr(task.IssueKey, "-"))
	fmt.Fprintf(w, "Start:\t%s\n", timestamp(task.StartTime))
	fmt.Fprintf(w, "End:\t%s\n", timestamp(task.EndTime))
	fmt.Fprintf(w, "Duration:\t%s (%.4f h)\n", domain.FormatDuration(task.Duration), task.Duration)
	fmt.Fprintf(w, "Created:\t%s\n", domain.FormatTimestamp(task.CreatedDate))
	fmt.Fprintf(w, "Synced:\t%s\n", yesNo(task.Synced))
	fmt.Fprintf(w, "Worklog:\t%s\n", valueOr(task.WorklogID, "-"))
	fmt.Fprintf(w, "Notes:\t%s\n", valueOr(task.Notes, ""))
	return w.Flush()
}

type editFlags struct {
	name, start, end, issue, notes, worklog string
	duration                                float64
	synced                                  bool
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Long: `Edit writes only the fields whose flags are given. An empty value clears
the start, end, issue, notes and worklog fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			update, err := buildEditUpdate(cmd, flags)
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				task, err := a.tasks.UpdateTask(ctx, taskID, update)
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), task)
			})
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Task name")
	cmd.Flags().StringVar(&flags.start, "start", "", "Start time, e.g. 2026-02-13T09:00:00")
	cmd.Flags().StringVar(&flags.end, "end", "", "End time")
	cmd.Flags().Float64Var(&flags.duration, "duration", 0, "Duration in hours")
	cmd.Flags().StringVar(&flags.issue, "issue", "", "Jira issue key")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "Notes")
	cmd.Flags().BoolVar(&flags.synced, "synced", false, "Mark the task as synced")
	cmd.Flags().StringVar(&flags.worklog, "worklog", "", "Jira worklog id")
	return cmd
}

func buildEditUpdate(cmd *cobra.Command, flags editFlags) (domain.TaskUpdate, error) {
	var update domain.TaskUpdate
	changed := cmd.Flags().Changed

	if changed("name") {
		update.Name = &flags.name
	}
	if changed("start") {
		value, err := optionalTime(flags.start)
		if err != nil {
			return domain.TaskUpdate{}, err
		}
		update.StartTime, update.StartTimeSet = value, true
	}
	if changed("end") {
		value, err := optionalTime(flags.end)
		if err != nil {
			return domain.TaskUpdate{}, err
		}
		update.EndTime, update.EndTimeSet = value, true
	}
	if changed("duration") {
		update.Duration = &flags.duration
	}
	if changed("issue") {
		update.IssueKey, update.IssueKeySet = optionalString(flags.issue), true
	}
	if changed("notes") {
		update.Notes, update.NotesSet = optionalString(flags.notes), true
	}
	if changed("synced") {
		update.Synced = &flags.synced
	}
	if changed("worklog") {
		update.WorklogID, update.WorklogIDSet = optionalString(flags.worklog), true
	}

	return update, nil
}

func newRecalcCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc <id>...",
		Short: "Recompute durations from start and end times",
		Long:  "Recalc rewrites the duration of each task that has both a start and an end time.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				tasks, err := a.tasks.RecalculateDurations(ctx, ids)
				if err != nil {
					return err
				}
				for _, task := range tasks {
					if task.StartTime == nil || task.EndTime == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "Task %d: skipped, needs start and end times\n", task.ID)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Task %d: %s\n", task.ID, domain.FormatDuration(task.Duration))
				}
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				if err := a.tasks.DeleteTasks(ctx, ids); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", len(ids))
				return nil
			})
		},
	}
}

func optionalTime(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := domain.ParseTimestamp(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func valueOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func clockTime(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Local().Format("15:04:05")
}

func timestamp(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return domain.FormatTimestamp(*value)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
