package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

const taskColumns = `id, name, state, start_time, end_time, duration, issue_key, created_date,
  sync_required, synced, notes, worklog_id`

const insertTaskQuery = `
INSERT INTO tasks (name, state, duration, issue_key, created_date, sync_required, synced, notes)
VALUES (?, ?, 0, ?, ?, 0, 0, ?)
`

const getTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

const listTasksForDateQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE created_date LIKE ?
ORDER BY id DESC
`

const listTasksByIDsQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id IN (?) ORDER BY id DESC`

const listRunningTasksQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE state = ? ORDER BY id DESC`

const deleteTasksQuery = `DELETE FROM tasks WHERE id IN (?)`

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	State        string         `db:"state"`
	StartTime    sql.NullString `db:"start_time"`
	EndTime      sql.NullString `db:"end_time"`
	Duration     float64        `db:"duration"`
	IssueKey     sql.NullString `db:"issue_key"`
	CreatedDate  string         `db:"created_date"`
	SyncRequired bool           `db:"sync_required"`
	Synced       bool           `db:"synced"`
	Notes        sql.NullString `db:"notes"`
	WorklogID    sql.NullString `db:"worklog_id"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

type RepositoryOption func(*TaskRepository)

// WithClock sets the source of created_date values.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *TaskRepository) {
		r.now = now
	}
}

func NewTaskRepository(db *sqlx.DB, opts ...RepositoryOption) *TaskRepository {
	r := &TaskRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: name is required", domain.ErrInvalidTask)
	}

	result, err := r.db.ExecContext(
		ctx,
		insertTaskQuery,
		name,
		string(domain.TaskStateCreated),
		nullString(input.IssueKey),
		domain.FormatTimestamp(r.now()),
		nullString(input.Notes),
	)
	if err != nil {
		return 0, storageError("create task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageError("create task", err)
	}

	return id, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, storageError("get task", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) ListForDate(ctx context.Context, date time.Time) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksForDateQuery, domain.FormatDate(date)+"%"); err != nil {
		return nil, storageError("list tasks for date", err)
	}

	return mapTaskRows(rows), nil
}

func (r *TaskRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Task, error) {
	if len(ids) == 0 {
		return []domain.Task{}, nil
	}

	query, args, err := sqlx.In(listTasksByIDsQuery, ids)
	if err != nil {
		return nil, storageError("list tasks by id", err)
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, storageError("list tasks by id", err)
	}

	return mapTaskRows(rows), nil
}

func (r *TaskRepository) ListRunning(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listRunningTasksQuery, string(domain.TaskStateRunning)); err != nil {
		return nil, storageError("list running tasks", err)
	}

	return mapTaskRows(rows), nil
}

// Update writes the set fields of update in a single statement. An empty
// update performs no write.
func (r *TaskRepository) Update(ctx context.Context, id int64, update domain.TaskUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	return updateTask(ctx, r.db, id, update)
}

// UpdateMany applies every change in one transaction; either all rows are
// written or none.
func (r *TaskRepository) UpdateMany(ctx context.Context, changes []domain.TaskChange) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("begin batch update", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, change := range changes {
		if change.Update.IsEmpty() {
			continue
		}
		if err := updateTask(ctx, tx, change.ID, change.Update); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit batch update", err)
	}

	return nil
}

// DeleteMany removes the rows whose id is in ids. Unknown ids are ignored.
func (r *TaskRepository) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(deleteTasksQuery, ids)
	if err != nil {
		return storageError("delete tasks", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("delete tasks", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return storageError("delete tasks", err)
	}

	if err := tx.Commit(); err != nil {
		return storageError("delete tasks", err)
	}

	return nil
}

func updateTask(ctx context.Context, db sqlx.ExtContext, id int64, update domain.TaskUpdate) error {
	assignments, args := buildTaskAssignments(update)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(assignments, ", "))
	args = append(args, id)

	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return storageError(fmt.Sprintf("update task %d", id), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError(fmt.Sprintf("update task %d", id), err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: update task %d: %w", domain.ErrStorage, id, domain.ErrTaskNotFound)
	}

	return nil
}

func buildTaskAssignments(update domain.TaskUpdate) ([]string, []any) {
	assignments := make([]string, 0, 9)
	args := make([]any, 0, 10)

	set := func(column string, value any) {
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}

	if update.Name != nil {
		set("name", strings.TrimSpace(*update.Name))
	}
	if update.State != nil {
		set("state", string(*update.State))
	}
	if update.StartTimeSet {
		set("start_time", nullTimestamp(update.StartTime))
	}
	if update.EndTimeSet {
		set("end_time", nullTimestamp(update.EndTime))
	}
	if update.Duration != nil {
		set("duration", *update.Duration)
	}
	if update.IssueKeySet {
		set("issue_key", nullString(update.IssueKey))
	}
	if update.Synced != nil {
		set("synced", *update.Synced)
	}
	if update.NotesSet {
		set("notes", nullString(update.Notes))
	}
	if update.WorklogIDSet {
		set("worklog_id", nullString(update.WorklogID))
	}

	return assignments, args
}

func mapTaskRows(rows []taskRow) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:           row.ID,
		Name:         row.Name,
		State:        domain.TaskState(row.State),
		Duration:     row.Duration,
		SyncRequired: row.SyncRequired,
		Synced:       row.Synced,
	}

	task.CreatedDate = parseStoredTime(row.ID, "created_date", row.CreatedDate)

	if row.StartTime.Valid && row.StartTime.String != "" {
		value := parseStoredTime(row.ID, "start_time", row.StartTime.String)
		if !value.IsZero() {
			task.StartTime = &value
		}
	}

	if row.EndTime.Valid && row.EndTime.String != "" {
		value := parseStoredTime(row.ID, "end_time", row.EndTime.String)
		if !value.IsZero() {
			task.EndTime = &value
		}
	}

	if row.IssueKey.Valid && row.IssueKey.String != "" {
		value := row.IssueKey.String
		task.IssueKey = &value
	}

	if row.Notes.Valid {
		value := row.Notes.String
		task.Notes = &value
	}

	if row.WorklogID.Valid && row.WorklogID.String != "" {
		value := row.WorklogID.String
		task.WorklogID = &value
	}

	return task
}

func parseStoredTime(id int64, column, value string) time.Time {
	parsed, err := domain.ParseTimestamp(value)
	if err != nil {
		zap.L().Warn("unreadable task timestamp", zap.Int64("task_id", id), zap.String("column", column), zap.Error(err))
		return time.Time{}
	}
	return parsed
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullTimestamp(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: domain.FormatTimestamp(*value), Valid: true}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
