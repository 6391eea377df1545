package domain

import "time"

type TaskState string

const (
	TaskStateCreated TaskState = "created"
	TaskStateRunning TaskState = "running"
	TaskStatePaused  TaskState = "paused"
	TaskStateStopped TaskState = "stopped"
)

func (s TaskState) Valid() bool {
	switch s {
	case TaskStateCreated, TaskStateRunning, TaskStatePaused, TaskStateStopped:
		return true
	}
	return false
}

// Task is one unit of tracked work. Duration is expressed in hours and
// accumulates across sessions.
type Task struct {
	ID           int64
	Name         string
	State        TaskState
	StartTime    *time.Time
	EndTime      *time.Time
	Duration     float64
	IssueKey     *string
	CreatedDate  time.Time
	SyncRequired bool
	Synced       bool
	Notes        *string
	WorklogID    *string
}

// Running reports whether the task has an open session.
func (t Task) Running() bool {
	return t.StartTime != nil && t.EndTime == nil && t.State != TaskStateStopped
}

func (t Task) Started() bool {
	return t.StartTime != nil
}

func (t Task) HasIssueKey() bool {
	return t.IssueKey != nil && *t.IssueKey != ""
}

type CreateTaskInput struct {
	Name     string
	IssueKey *string
	Notes    *string
}

// TaskUpdate lists every field that may be written after creation. A nil
// pointer leaves the column untouched; the *Set flags allow clearing the
// nullable columns.
type TaskUpdate struct {
	Name         *string
	State        *TaskState
	StartTime    *time.Time
	StartTimeSet bool
	EndTime      *time.Time
	EndTimeSet   bool
	Duration     *float64
	IssueKey     *string
	IssueKeySet  bool
	Synced       *bool
	Notes        *string
	NotesSet     bool
	WorklogID    *string
	WorklogIDSet bool
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Name == nil &&
		u.State == nil &&
		!u.StartTimeSet &&
		!u.EndTimeSet &&
		u.Duration == nil &&
		!u.IssueKeySet &&
		u.Synced == nil &&
		!u.NotesSet &&
		!u.WorklogIDSet
}

// Apply returns a copy of task with the update merged in.
func (u TaskUpdate) Apply(task Task) Task {
	if u.Name != nil {
		task.Name = *u.Name
	}
	if u.State != nil {
		task.State = *u.State
	}
	if u.StartTimeSet {
		task.StartTime = u.StartTime
	}
	if u.EndTimeSet {
		task.EndTime = u.EndTime
	}
	if u.Duration != nil {
		task.Duration = *u.Duration
	}
	if u.IssueKeySet {
		task.IssueKey = u.IssueKey
	}
	if u.Synced != nil {
		task.Synced = *u.Synced
	}
	if u.NotesSet {
		task.Notes = u.Notes
	}
	if u.WorklogIDSet {
		task.WorklogID = u.WorklogID
	}
	return task
}

// TaskChange pairs a task id with the fields to write, for batch saves.
type TaskChange struct {
	ID     int64
	Update TaskUpdate
}

type DayListing struct {
	Date       time.Time
	Tasks      []Task
	TotalHours float64
}
