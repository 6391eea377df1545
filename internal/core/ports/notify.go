package ports

import "context"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type Notification struct {
	Title    string
	Message  string
	Priority Priority
	// TimeoutSeconds is how long the desktop keeps the notice visible.
	TimeoutSeconds int
}

// Notifier delivers a desktop notification. Callers never depend on the
// outcome beyond logging it.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n Notification) error
}
