package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"timetracker/internal/core/domain"
)

var errNoCurrentTask = errors.New("no current task, pass a task id")

func newStartCmd(opts *rootOptions) *cobra.Command {
	var issueKey, notes string

	cmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Start a timer for a new task",
		Long:  "Start creates a task and begins timing it. Only one task can run at a time.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				input := domain.CreateTaskInput{Name: strings.Join(args, " ")}
				if issueKey != "" {
					input.IssueKey = &issueKey
				}
				if notes != "" {
					input.Notes = &notes
				}

				taskID, err := a.tasks.Start(ctx, input)
				if err != nil {
					return err
				}

				snapshot := a.tasks.Current()
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d running: %s\n", taskID, snapshot.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&issueKey, "issue", "i", "", "Jira issue key, e.g. PROJ-123")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newPauseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pause [id]",
		Short: "Pause a running task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				taskID, err := targetTask(a, args)
				if err != nil {
					return err
				}

				total, err := a.tasks.Pause(ctx, taskID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d paused after %s\n", taskID, domain.FormatDuration(total))
				return nil
			})
		},
	}
}

func newResumeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				taskID, err := parseTaskID(args[0])
				if err != nil {
					return err
				}

				if err := a.tasks.Resume(ctx, taskID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d running\n", taskID)
				return nil
			})
		},
	}
}

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [id]",
		Short: "Stop a task and record its duration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				taskID, err := targetTask(a, args)
				if err != nil {
					return err
				}

				total, err := a.tasks.Stop(ctx, taskID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d stopped: %s\n", taskID, domain.FormatDuration(total))
				return nil
			})
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(_ context.Context, a *app) error {
				snapshot := a.tasks.Current()
				if !snapshot.Active() {
					fmt.Fprintln(cmd.OutOrStdout(), "No timer running")
					return nil
				}

				label := snapshot.Name
				if snapshot.IssueKey != "" {
					label += " (" + snapshot.IssueKey + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d running: %s %s\n",
					snapshot.TaskID, label, domain.FormatClock(snapshot.Elapsed))
				return nil
			})
		},
	}
}

// targetTask resolves the optional id argument, defaulting to the running
// task.
func targetTask(a *app, args []string) (int64, error) {
	if len(args) == 1 {
		return parseTaskID(args[0])
	}

	snapshot := a.tasks.Current()
	if snapshot.TaskID == 0 {
		return 0, errNoCurrentTask
	}
	return snapshot.TaskID, nil
}

func parseTaskID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", value)
	}
	return id, nil
}

func parseTaskIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
