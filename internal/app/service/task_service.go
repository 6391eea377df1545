package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

// TaskService drives tasks through their lifecycle and is the only writer
// of time fields during normal operation.
type TaskService struct {
	taskRepository ports.TaskRepository
	// transitions serializes timer transitions from the session check
	// through the session update, so at most one task runs.
	transitions    sync.Mutex
	session        *Session
	notifications  *TimerNotifications
	now            func() time.Time
	issueKeyPrefix string
}

type Option func(*TaskService)

func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func WithSession(session *Session) Option {
	return func(s *TaskService) {
		s.session = session
	}
}

func WithNotifications(notifications *TimerNotifications) Option {
	return func(s *TaskService) {
		s.notifications = notifications
	}
}

// WithIssueKeyPrefix restricts accepted issue keys to one project.
func WithIssueKeyPrefix(prefix string) Option {
	return func(s *TaskService) {
		s.issueKeyPrefix = prefix
	}
}

func NewTaskService(taskRepository ports.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{taskRepository: taskRepository, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.session == nil {
		s.session = NewSession(s.now)
	}
	return s
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) Session() *Session {
	return s.session
}

func (s *TaskService) Current() ports.SessionSnapshot {
	return s.session.Snapshot()
}

// RestoreSession picks up a task left running by a previous process so the
// single running timer holds across restarts.
func (s *TaskService) RestoreSession(ctx context.Context) error {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	tasks, err := s.taskRepository.ListRunning(ctx)
	if err != nil {
		return s.fail("restore", 0, err)
	}
	if len(tasks) == 0 {
		return nil
	}

	task := tasks[0]
	since := s.now()
	if task.StartTime != nil {
		since = *task.StartTime
	}
	s.session.run(task, since)
	timerActive.Set(1)
	if len(tasks) > 1 {
		zap.L().Warn("several tasks are marked running", zap.Int("count", len(tasks)), zap.Int64("task_id", task.ID))
	}
	zap.L().Info("restored running task", zap.Int64("task_id", task.ID))
	return nil
}

// Start creates a task and opens its first session.
func (s *TaskService) Start(ctx context.Context, input domain.CreateTaskInput) (int64, error) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	id, err := s.start(ctx, input)
	observeTransition("start", err)
	return id, err
}

func (s *TaskService) start(ctx context.Context, input domain.CreateTaskInput) (int64, error) {
	input, err := s.normalizeCreateInput(input)
	if err != nil {
		return 0, s.fail("start", 0, err)
	}
	if current := s.session.Snapshot(); current.Active() {
		return 0, s.fail("start", current.TaskID, domain.ErrTimerActive)
	}

	id, err := s.taskRepository.Create(ctx, input)
	if err != nil {
		return 0, s.fail("start", 0, err)
	}

	now := s.now()
	running := domain.TaskStateRunning
	if err := s.taskRepository.Update(ctx, id, domain.TaskUpdate{
		State:        &running,
		StartTime:    &now,
		StartTimeSet: true,
	}); err != nil {
		if deleteErr := s.taskRepository.DeleteMany(ctx, []int64{id}); deleteErr != nil {
			zap.L().Error("failed to remove unstarted task", zap.Int64("task_id", id), zap.Error(deleteErr))
		}
		return 0, s.fail("start", id, err)
	}

	s.session.run(domain.Task{ID: id, Name: input.Name, IssueKey: input.IssueKey}, now)
	timerActive.Set(1)
	zap.L().Info("started task", zap.Int64("task_id", id), zap.String("name", input.Name))

	return id, nil
}

// Toggle is the single start button of the timer: it resumes the paused
// current task or starts a new one.
func (s *TaskService) Toggle(ctx context.Context, input domain.CreateTaskInput) (int64, error) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	current := s.session.Snapshot()
	if current.Active() {
		return 0, s.fail("toggle", current.TaskID, domain.ErrTimerActive)
	}
	if current.TaskID != 0 && current.State == domain.TaskStatePaused {
		err := s.resume(ctx, current.TaskID)
		observeTransition("resume", err)
		if err != nil {
			return 0, err
		}
		return current.TaskID, nil
	}

	id, err := s.start(ctx, input)
	observeTransition("start", err)
	return id, err
}

// Pause closes the open session and returns the accumulated duration.
func (s *TaskService) Pause(ctx context.Context, id int64) (float64, error) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	total, err := s.pause(ctx, id)
	observeTransition("pause", err)
	return total, err
}

func (s *TaskService) pause(ctx context.Context, id int64) (float64, error) {
	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return 0, s.fail("pause", id, err)
	}
	if !task.Started() {
		return 0, s.fail("pause", id, domain.ErrTaskNotStarted)
	}
	if task.State == domain.TaskStateStopped {
		return 0, s.fail("pause", id, domain.ErrTaskStopped)
	}
	if task.EndTime != nil {
		return 0, s.fail("pause", id, domain.ErrTaskNotRunning)
	}

	now := s.now()
	elapsed := domain.CalculateDuration(*task.StartTime, now)
	total := task.Duration + elapsed
	paused := domain.TaskStatePaused
	if err := s.taskRepository.Update(ctx, id, domain.TaskUpdate{
		State:      &paused,
		EndTime:    &now,
		EndTimeSet: true,
		Duration:   &total,
	}); err != nil {
		return 0, s.fail("pause", id, err)
	}

	s.session.pause(id)
	timerActive.Set(0)
	trackedHoursTotal.Add(elapsed)
	zap.L().Info("paused task", zap.Int64("task_id", id), zap.Float64("duration_hours", total))

	return total, nil
}

// Resume opens a new session on a task that is not running. Stopped tasks
// cannot be resumed.
func (s *TaskService) Resume(ctx context.Context, id int64) error {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	err := s.resume(ctx, id)
	observeTransition("resume", err)
	return err
}

func (s *TaskService) resume(ctx context.Context, id int64) error {
	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return s.fail("resume", id, err)
	}
	if task.State == domain.TaskStateStopped {
		return s.fail("resume", id, domain.ErrTaskStopped)
	}
	if task.Running() {
		return s.fail("resume", id, domain.ErrTaskRunning)
	}
	if current := s.session.Snapshot(); current.Active() && current.TaskID != id {
		return s.fail("resume", current.TaskID, domain.ErrTimerActive)
	}

	now := s.now()
	running := domain.TaskStateRunning
	if err := s.taskRepository.Update(ctx, id, domain.TaskUpdate{
		State:        &running,
		StartTime:    &now,
		StartTimeSet: true,
		EndTimeSet:   true,
	}); err != nil {
		return s.fail("resume", id, err)
	}

	s.session.run(task, now)
	timerActive.Set(1)
	zap.L().Info("resumed task", zap.Int64("task_id", id))

	return nil
}

// Stop finalizes the task and returns its total duration. A paused task is
// stopped without adding time.
func (s *TaskService) Stop(ctx context.Context, id int64) (float64, error) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	total, err := s.stop(ctx, id)
	observeTransition("stop", err)
	return total, err
}

func (s *TaskService) stop(ctx context.Context, id int64) (float64, error) {
	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return 0, s.fail("stop", id, err)
	}
	if !task.Started() {
		return 0, s.fail("stop", id, domain.ErrTaskNotStarted)
	}
	if task.State == domain.TaskStateStopped {
		return 0, s.fail("stop", id, domain.ErrTaskStopped)
	}

	now := s.now()
	stopped := domain.TaskStateStopped
	update := domain.TaskUpdate{State: &stopped}
	total := task.Duration
	var elapsed float64
	if task.EndTime == nil {
		elapsed = domain.CalculateDuration(*task.StartTime, now)
		total += elapsed
		update.EndTime = &now
		update.EndTimeSet = true
		update.Duration = &total
	}

	if err := s.taskRepository.Update(ctx, id, update); err != nil {
		return 0, s.fail("stop", id, err)
	}

	s.session.release(id, now)
	timerActive.Set(0)
	trackedHoursTotal.Add(elapsed)
	zap.L().Info("stopped task", zap.Int64("task_id", id), zap.Float64("duration_hours", total))

	issueKey := ""
	if task.IssueKey != nil {
		issueKey = *task.IssueKey
	}
	s.notifications.Completed(ctx, task.Name, issueKey, time.Duration(total*float64(time.Hour)))

	return total, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, s.fail("get", id, err)
	}
	return task, nil
}

func (s *TaskService) ListForDate(ctx context.Context, date time.Time) (domain.DayListing, error) {
	tasks, err := s.taskRepository.ListForDate(ctx, date)
	if err != nil {
		return domain.DayListing{}, s.fail("list", 0, err)
	}

	return domain.DayListing{
		Date:       date,
		Tasks:      tasks,
		TotalHours: domain.TotalHours(tasks),
	}, nil
}

// UpdateTask applies a manual edit from the listing view and returns the
// stored task.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (domain.Task, error) {
	update, err := s.normalizeUpdate(update)
	if err != nil {
		return domain.Task{}, s.fail("update", id, err)
	}
	if err := s.taskRepository.Update(ctx, id, update); err != nil {
		return domain.Task{}, s.fail("update", id, err)
	}
	return s.GetTask(ctx, id)
}

// SaveAll writes every edited row of the listing view atomically.
func (s *TaskService) SaveAll(ctx context.Context, changes []domain.TaskChange) error {
	normalized := make([]domain.TaskChange, 0, len(changes))
	for _, change := range changes {
		update, err := s.normalizeUpdate(change.Update)
		if err != nil {
			return s.fail("save_all", change.ID, err)
		}
		normalized = append(normalized, domain.TaskChange{ID: change.ID, Update: update})
	}
	if err := s.taskRepository.UpdateMany(ctx, normalized); err != nil {
		return s.fail("save_all", 0, err)
	}
	zap.L().Info("saved task edits", zap.Int("count", len(changes)))
	return nil
}

func (s *TaskService) DeleteTasks(ctx context.Context, ids []int64) error {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	if err := s.taskRepository.DeleteMany(ctx, ids); err != nil {
		return s.fail("delete", 0, err)
	}

	now := s.now()
	for _, id := range ids {
		if current := s.session.Snapshot(); current.TaskID == id {
			s.session.release(id, now)
			timerActive.Set(0)
		}
	}
	zap.L().Info("deleted tasks", zap.Int64s("task_ids", ids))
	return nil
}

// RecalculateDurations replaces the duration of each task that has both a
// start and an end with the length of that interval.
func (s *TaskService) RecalculateDurations(ctx context.Context, ids []int64) ([]domain.Task, error) {
	tasks, err := s.taskRepository.ListByIDs(ctx, ids)
	if err != nil {
		return nil, s.fail("recalculate", 0, err)
	}

	changes := make([]domain.TaskChange, 0, len(tasks))
	updated := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.StartTime == nil || task.EndTime == nil {
			updated = append(updated, task)
			continue
		}
		duration := domain.CalculateDuration(*task.StartTime, *task.EndTime)
		update := domain.TaskUpdate{Duration: &duration}
		changes = append(changes, domain.TaskChange{ID: task.ID, Update: update})
		updated = append(updated, update.Apply(task))
	}

	if err := s.taskRepository.UpdateMany(ctx, changes); err != nil {
		return nil, s.fail("recalculate", 0, err)
	}

	return updated, nil
}

// RecomputeDuration stores a hand-typed start/end pair and replaces the
// duration with the length of that interval.
func (s *TaskService) RecomputeDuration(ctx context.Context, id int64, start, end string) (domain.Task, error) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	startTime, err := domain.ParseTimestamp(start)
	if err != nil {
		return domain.Task{}, s.fail("recompute", id, err)
	}
	endTime, err := domain.ParseTimestamp(end)
	if err != nil {
		return domain.Task{}, s.fail("recompute", id, err)
	}

	task, err := s.taskRepository.Get(ctx, id)
	if err != nil {
		return domain.Task{}, s.fail("recompute", id, err)
	}
	if task.Running() {
		return domain.Task{}, s.fail("recompute", id, domain.ErrTaskRunning)
	}

	duration, err := domain.CalculateDurationText(start, end)
	if err != nil {
		return domain.Task{}, s.fail("recompute", id, err)
	}
	if err := s.taskRepository.Update(ctx, id, domain.TaskUpdate{
		StartTime:    &startTime,
		StartTimeSet: true,
		EndTime:      &endTime,
		EndTimeSet:   true,
		Duration:     &duration,
	}); err != nil {
		return domain.Task{}, s.fail("recompute", id, err)
	}

	return s.GetTask(ctx, id)
}

func (s *TaskService) normalizeCreateInput(input domain.CreateTaskInput) (domain.CreateTaskInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, fmt.Errorf("%w: name is required", domain.ErrInvalidTask)
	}

	if input.IssueKey != nil {
		key, err := domain.NormalizeIssueKey(*input.IssueKey, s.issueKeyPrefix)
		if err != nil {
			return input, err
		}
		input.IssueKey = key
	}

	return input, nil
}

func (s *TaskService) normalizeUpdate(update domain.TaskUpdate) (domain.TaskUpdate, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return update, fmt.Errorf("%w: name is required", domain.ErrInvalidTask)
	}
	if update.Duration != nil && *update.Duration < 0 {
		return update, fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidTask)
	}
	if update.State != nil && !update.State.Valid() {
		return update, fmt.Errorf("%w: unknown state %q", domain.ErrInvalidTask, *update.State)
	}
	if update.IssueKeySet && update.IssueKey != nil {
		key, err := domain.NormalizeIssueKey(*update.IssueKey, s.issueKeyPrefix)
		if err != nil {
			return update, err
		}
		update.IssueKey = key
	}
	return update, nil
}

// fail logs err with the operation context and returns it unchanged.
func (s *TaskService) fail(operation string, id int64, err error) error {
	fields := []zap.Field{zap.String("operation", operation), zap.Error(err)}
	if id != 0 {
		fields = append(fields, zap.Int64("task_id", id))
	}

	switch {
	case errors.Is(err, domain.ErrStorage):
		zap.L().Error("task operation failed", fields...)
	default:
		zap.L().Warn("task operation rejected", fields...)
	}
	return err
}
