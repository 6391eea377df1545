package ports

import (
	"context"
	"time"

	"timetracker/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, input domain.CreateTaskInput) (int64, error)
	// Get returns domain.ErrTaskNotFound when no row has the id.
	Get(ctx context.Context, id int64) (domain.Task, error)
	ListForDate(ctx context.Context, date time.Time) ([]domain.Task, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Task, error)
	ListRunning(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id int64, update domain.TaskUpdate) error
	UpdateMany(ctx context.Context, changes []domain.TaskChange) error
	DeleteMany(ctx context.Context, ids []int64) error
}

type TaskService interface {
	Start(ctx context.Context, input domain.CreateTaskInput) (int64, error)
	Toggle(ctx context.Context, input domain.CreateTaskInput) (int64, error)
	Pause(ctx context.Context, id int64) (float64, error)
	Resume(ctx context.Context, id int64) error
	Stop(ctx context.Context, id int64) (float64, error)
	Current() SessionSnapshot

	GetTask(ctx context.Context, id int64) (domain.Task, error)
	ListForDate(ctx context.Context, date time.Time) (domain.DayListing, error)
	UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (domain.Task, error)
	SaveAll(ctx context.Context, changes []domain.TaskChange) error
	DeleteTasks(ctx context.Context, ids []int64) error
	RecalculateDurations(ctx context.Context, ids []int64) ([]domain.Task, error)
	RecomputeDuration(ctx context.Context, id int64, start, end string) (domain.Task, error)
}

// SessionSnapshot is a read-only view of the controller's current task.
type SessionSnapshot struct {
	TaskID   int64
	Name     string
	IssueKey string
	State    domain.TaskState
	// Elapsed covers the open session only.
	Elapsed time.Duration
}

func (s SessionSnapshot) Active() bool {
	return s.TaskID != 0 && s.State == domain.TaskStateRunning
}
