package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"timetracker/internal/app/service"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

type worklogGatewayMock struct {
	mock.Mock
}

func (m *worklogGatewayMock) PostWorklog(ctx context.Context, req ports.WorklogRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type issueKeyPrompterMock struct {
	mock.Mock
}

func (m *issueKeyPrompterMock) PromptIssueKey(ctx context.Context, task domain.Task) (string, error) {
	args := m.Called(ctx, task)
	return args.String(0), args.Error(1)
}

func (f *fixture) trackedTask(t *testing.T, name string, issueKey *string, tracked time.Duration) int64 {
	t.Helper()

	id, err := f.service.Start(f.ctx, domain.CreateTaskInput{Name: name, IssueKey: issueKey})
	require.NoError(t, err)
	f.clock.Advance(tracked)
	_, err = f.service.Stop(f.ctx, id)
	require.NoError(t, err)
	return id
}

func TestSyncService_PostsWorklogAndRecordsID(t *testing.T) {
	f := newFixture(t)
	started := f.clock.Now()
	id := f.trackedTask(t, "Fix bug", strPtr("PROJ-1"), 90*time.Minute)

	gateway := new(worklogGatewayMock)
	gateway.On("PostWorklog", mock.Anything, mock.MatchedBy(func(req ports.WorklogRequest) bool {
		return req.IssueKey == "PROJ-1" && req.Seconds == 5400 && req.Comment == "Fix bug" && req.Started.Equal(started)
	})).Return("10042", nil).Once()

	results, err := service.NewSyncService(f.repo, gateway, "").Sync(f.ctx, []int64{id}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, ports.SyncOutcomeSynced, results[0].Outcome)
	require.Equal(t, "10042", results[0].WorklogID)

	task, err := f.service.GetTask(f.ctx, id)
	require.NoError(t, err)
	require.True(t, task.Synced)
	require.Equal(t, "10042", *task.WorklogID)

	results, err = service.NewSyncService(f.repo, gateway, "").Sync(f.ctx, []int64{id}, nil)
	require.NoError(t, err)
	require.Equal(t, ports.SyncOutcomeAlreadySynced, results[0].Outcome)
	gateway.AssertExpectations(t)
}

func TestSyncService_PromptsForMissingIssueKey(t *testing.T) {
	f := newFixture(t)
	keyed := f.trackedTask(t, "Keyed later", nil, time.Hour)
	skipped := f.trackedTask(t, "Skipped", nil, time.Hour)

	prompter := new(issueKeyPrompterMock)
	prompter.On("PromptIssueKey", mock.Anything, mock.MatchedBy(func(task domain.Task) bool { return task.ID == keyed })).
		Return("proj-3", nil).Once()
	prompter.On("PromptIssueKey", mock.Anything, mock.MatchedBy(func(task domain.Task) bool { return task.ID == skipped })).
		Return("", nil).Once()

	gateway := new(worklogGatewayMock)
	gateway.On("PostWorklog", mock.Anything, mock.MatchedBy(func(req ports.WorklogRequest) bool {
		return req.IssueKey == "PROJ-3" && req.Seconds == 3600
	})).Return("7", nil).Once()

	results, err := service.NewSyncService(f.repo, gateway, "").Sync(f.ctx, []int64{skipped, keyed}, prompter)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, keyed, results[0].TaskID)
	require.Equal(t, ports.SyncOutcomeSynced, results[0].Outcome)
	require.Equal(t, ports.SyncOutcomeNoIssueKey, results[1].Outcome)
	require.ErrorIs(t, results[1].Err, domain.ErrIssueKeyRequired)

	task, err := f.service.GetTask(f.ctx, keyed)
	require.NoError(t, err)
	require.Equal(t, "PROJ-3", *task.IssueKey)

	task, err = f.service.GetTask(f.ctx, skipped)
	require.NoError(t, err)
	require.Nil(t, task.IssueKey)
	require.False(t, task.Synced)

	prompter.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestSyncService_ContinuesPastFailures(t *testing.T) {
	f := newFixture(t)
	failing := f.trackedTask(t, "Remote rejects", strPtr("PROJ-1"), time.Hour)
	empty, err := f.repo.Create(f.ctx, domain.CreateTaskInput{Name: "Nothing tracked", IssueKey: strPtr("PROJ-2")})
	require.NoError(t, err)
	ok := f.trackedTask(t, "Accepted", strPtr("PROJ-3"), 30*time.Minute)

	gateway := new(worklogGatewayMock)
	gateway.On("PostWorklog", mock.Anything, mock.MatchedBy(func(req ports.WorklogRequest) bool { return req.IssueKey == "PROJ-1" })).
		Return("", errors.New("unexpected status 400")).Once()
	gateway.On("PostWorklog", mock.Anything, mock.MatchedBy(func(req ports.WorklogRequest) bool { return req.IssueKey == "PROJ-3" })).
		Return("99", nil).Once()

	results, err := service.NewSyncService(f.repo, gateway, "").Sync(f.ctx, []int64{failing, empty, ok}, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, ports.SyncOutcomeFailed, results[0].Outcome)
	require.ErrorIs(t, results[0].Err, domain.ErrSyncFailed)
	require.Equal(t, ports.SyncOutcomeNoDuration, results[1].Outcome)
	require.Equal(t, ports.SyncOutcomeSynced, results[2].Outcome)

	task, err := f.service.GetTask(f.ctx, failing)
	require.NoError(t, err)
	require.False(t, task.Synced)
	require.Nil(t, task.WorklogID)
	gateway.AssertExpectations(t)
}

func TestSyncService_WithoutGateway(t *testing.T) {
	f := newFixture(t)

	_, err := service.NewSyncService(f.repo, nil, "").Sync(f.ctx, []int64{1}, nil)
	require.ErrorIs(t, err, domain.ErrSyncFailed)
}
