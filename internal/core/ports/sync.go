package ports

import (
	"context"
	"time"

	"timetracker/internal/core/domain"
)

type WorklogRequest struct {
	IssueKey string
	Started  time.Time
	Seconds  int64
	Comment  string
}

// WorklogGateway records time spent in the external issue tracker and
// returns the tracker's worklog id.
type WorklogGateway interface {
	PostWorklog(ctx context.Context, req WorklogRequest) (string, error)
}

// IssueKeyPrompter asks for the issue key of a task that has none. An empty
// answer skips the task.
type IssueKeyPrompter interface {
	PromptIssueKey(ctx context.Context, task domain.Task) (string, error)
}

type SyncOutcome string

const (
	SyncOutcomeSynced        SyncOutcome = "synced"
	SyncOutcomeAlreadySynced SyncOutcome = "already_synced"
	SyncOutcomeNoIssueKey    SyncOutcome = "missing_issue_key"
	SyncOutcomeNoDuration    SyncOutcome = "no_duration"
	SyncOutcomeFailed        SyncOutcome = "failed"
)

type SyncResult struct {
	TaskID    int64
	IssueKey  string
	Outcome   SyncOutcome
	WorklogID string
	Err       error
}

type SyncService interface {
	Sync(ctx context.Context, ids []int64, prompter IssueKeyPrompter) ([]SyncResult, error)
}
