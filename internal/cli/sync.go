package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/config"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "sync [id...]",
		Short: "Post tracked time to Jira as worklogs",
		Long: `Sync posts a worklog for each task that is not synced yet. Without ids it
syncs every task of --date. Tasks without an issue key prompt for one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, func(ctx context.Context, a *app) error {
				syncService := a.syncService(ctx)
				if syncService == nil {
					return fmt.Errorf("%w: run 'timetracker configure' first", config.ErrIncompleteCredentials)
				}

				if len(ids) == 0 {
					ids, err = taskIDsForDate(ctx, a, date)
					if err != nil {
						return err
					}
				}
				if len(ids) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to sync")
					return nil
				}

				prompter := newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				results, err := syncService.Sync(ctx, ids, prompter)
				if err != nil {
					return err
				}
				return printSyncResults(cmd.OutOrStdout(), results)
			})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to sync when no ids are given, as YYYY-MM-DD (default today)")
	return cmd
}

func taskIDsForDate(ctx context.Context, a *app, date string) ([]int64, error) {
	day := time.Now()
	if date != "" {
		parsed, err := domain.ParseDate(date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}

	listing, err := a.tasks.ListForDate(ctx, day)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(listing.Tasks))
	for _, task := range listing.Tasks {
		ids = append(ids, task.ID)
	}
	return ids, nil
}

func printSyncResults(out io.Writer, results []ports.SyncResult) error {
	var failed int
	for _, result := range results {
		switch result.Outcome {
		case ports.SyncOutcomeSynced:
			fmt.Fprintf(out, "Task %d: logged to %s (worklog %s)\n", result.TaskID, result.IssueKey, result.WorklogID)
		case ports.SyncOutcomeAlreadySynced:
			fmt.Fprintf(out, "Task %d: already synced\n", result.TaskID)
		case ports.SyncOutcomeNoIssueKey:
			fmt.Fprintf(out, "Task %d: skipped, no issue key\n", result.TaskID)
		case ports.SyncOutcomeNoDuration:
			fmt.Fprintf(out, "Task %d: skipped, no tracked time\n", result.TaskID)
		default:
			failed++
			fmt.Fprintf(out, "Task %d: failed: %v\n", result.TaskID, result.Err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d task(s) failed to sync", failed)
	}
	return nil
}

// linePrompter asks for missing issue keys on the terminal.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) PromptIssueKey(_ context.Context, task domain.Task) (string, error) {
	fmt.Fprintf(p.out, "Issue key for task %d '%s' (empty to skip): ", task.ID, task.Name)
	return p.readLine()
}

func (p *linePrompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

func (p *linePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
