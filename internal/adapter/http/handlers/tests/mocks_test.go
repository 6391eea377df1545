package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) Start(ctx context.Context, input domain.CreateTaskInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskServiceMock) Toggle(ctx context.Context, input domain.CreateTaskInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskServiceMock) Pause(ctx context.Context, id int64) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

func (m *taskServiceMock) Resume(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskServiceMock) Stop(ctx context.Context, id int64) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

func (m *taskServiceMock) Current() ports.SessionSnapshot {
	args := m.Called()
	return args.Get(0).(ports.SessionSnapshot)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListForDate(ctx context.Context, date time.Time) (domain.DayListing, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.DayListing), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (domain.Task, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SaveAll(ctx context.Context, changes []domain.TaskChange) error {
	args := m.Called(ctx, changes)
	return args.Error(0)
}

func (m *taskServiceMock) DeleteTasks(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *taskServiceMock) RecalculateDurations(ctx context.Context, ids []int64) ([]domain.Task, error) {
	args := m.Called(ctx, ids)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) RecomputeDuration(ctx context.Context, id int64, start, end string) (domain.Task, error) {
	args := m.Called(ctx, id, start, end)
	return args.Get(0).(domain.Task), args.Error(1)
}

type syncServiceMock struct {
	mock.Mock
}

var _ ports.SyncService = (*syncServiceMock)(nil)

func (m *syncServiceMock) Sync(ctx context.Context, ids []int64, prompter ports.IssueKeyPrompter) ([]ports.SyncResult, error) {
	args := m.Called(ctx, ids, prompter)

	var results []ports.SyncResult
	if value := args.Get(0); value != nil {
		results = value.([]ports.SyncResult)
	}
	return results, args.Error(1)
}
