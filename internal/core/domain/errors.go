package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidState = errors.New("invalid task state")
	ErrStorage      = errors.New("storage failure")

	ErrTaskNotStarted = fmt.Errorf("%w: task hasn't been started", ErrInvalidState)
	ErrTaskNotRunning = fmt.Errorf("%w: task is not running", ErrInvalidState)
	ErrTaskRunning    = fmt.Errorf("%w: task is already running", ErrInvalidState)
	ErrTaskStopped    = fmt.Errorf("%w: task is stopped", ErrInvalidState)
	ErrTimerActive    = fmt.Errorf("%w: another task is running", ErrInvalidState)

	ErrInvalidTask      = errors.New("invalid task")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrIssueKeyRequired = errors.New("issue key required")
	ErrSyncFailed       = errors.New("worklog sync failed")
)
