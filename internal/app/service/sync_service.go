package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

// SyncService reports task durations to the issue tracker as worklogs.
type SyncService struct {
	taskRepository ports.TaskRepository
	gateway        ports.WorklogGateway
	issueKeyPrefix string
}

func NewSyncService(taskRepository ports.TaskRepository, gateway ports.WorklogGateway, issueKeyPrefix string) *SyncService {
	return &SyncService{
		taskRepository: taskRepository,
		gateway:        gateway,
		issueKeyPrefix: issueKeyPrefix,
	}
}

var _ ports.SyncService = (*SyncService)(nil)

// Sync posts one worklog per selected task. Tasks without an issue key are
// offered to prompter; a failed task does not stop the others. The returned
// error is reserved for failures that prevent the whole run.
func (s *SyncService) Sync(ctx context.Context, ids []int64, prompter ports.IssueKeyPrompter) ([]ports.SyncResult, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: no worklog gateway configured", domain.ErrSyncFailed)
	}

	tasks, err := s.taskRepository.ListByIDs(ctx, ids)
	if err != nil {
		zap.L().Error("failed to load tasks for sync", zap.Error(err))
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	results := make([]ports.SyncResult, 0, len(tasks))
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := s.syncTask(ctx, task, prompter)
		worklogSyncTotal.WithLabelValues(string(result.Outcome)).Inc()
		results = append(results, result)
	}

	return results, nil
}

func (s *SyncService) syncTask(ctx context.Context, task domain.Task, prompter ports.IssueKeyPrompter) ports.SyncResult {
	result := ports.SyncResult{TaskID: task.ID}
	if task.IssueKey != nil {
		result.IssueKey = *task.IssueKey
	}

	if task.Synced {
		result.Outcome = ports.SyncOutcomeAlreadySynced
		if task.WorklogID != nil {
			result.WorklogID = *task.WorklogID
		}
		return result
	}

	if !task.HasIssueKey() {
		key, err := s.promptIssueKey(ctx, task, prompter)
		if err != nil {
			return s.failed(result, err)
		}
		if key == nil {
			result.Outcome = ports.SyncOutcomeNoIssueKey
			result.Err = domain.ErrIssueKeyRequired
			return result
		}
		if err := s.taskRepository.Update(ctx, task.ID, domain.TaskUpdate{IssueKey: key, IssueKeySet: true}); err != nil {
			return s.failed(result, err)
		}
		task.IssueKey = key
		result.IssueKey = *key
	}

	seconds := int64(math.Round(task.Duration * 3600))
	if seconds <= 0 {
		result.Outcome = ports.SyncOutcomeNoDuration
		return result
	}

	started := task.CreatedDate
	if task.StartTime != nil {
		started = *task.StartTime
	}

	worklogID, err := s.gateway.PostWorklog(ctx, ports.WorklogRequest{
		IssueKey: result.IssueKey,
		Started:  started,
		Seconds:  seconds,
		Comment:  task.Name,
	})
	if err != nil {
		return s.failed(result, err)
	}

	synced := true
	if err := s.taskRepository.Update(ctx, task.ID, domain.TaskUpdate{
		WorklogID:    &worklogID,
		WorklogIDSet: true,
		Synced:       &synced,
	}); err != nil {
		// The worklog exists remotely; keep its id in the report so it can be
		// recorded by hand.
		result.WorklogID = worklogID
		return s.failed(result, err)
	}

	zap.L().Info("synced task worklog",
		zap.Int64("task_id", task.ID),
		zap.String("issue_key", result.IssueKey),
		zap.String("worklog_id", worklogID),
	)
	result.Outcome = ports.SyncOutcomeSynced
	result.WorklogID = worklogID
	return result
}

func (s *SyncService) promptIssueKey(ctx context.Context, task domain.Task, prompter ports.IssueKeyPrompter) (*string, error) {
	if prompter == nil {
		return nil, nil
	}
	answer, err := prompter.PromptIssueKey(ctx, task)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeIssueKey(answer, s.issueKeyPrefix)
}

func (s *SyncService) failed(result ports.SyncResult, err error) ports.SyncResult {
	if !errors.Is(err, domain.ErrSyncFailed) {
		err = fmt.Errorf("%w: %w", domain.ErrSyncFailed, err)
	}
	zap.L().Warn("task sync failed",
		zap.String("operation", "sync"),
		zap.Int64("task_id", result.TaskID),
		zap.Error(err),
	)
	result.Outcome = ports.SyncOutcomeFailed
	result.Err = err
	return result
}
