package service

import (
	"sync"
	"time"

	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

// Session holds the task the controller is currently timing. It is shared
// with the reminder loop, which only reads it.
type Session struct {
	mu           sync.RWMutex
	now          func() time.Time
	taskID       int64
	name         string
	issueKey     string
	state        domain.TaskState
	runningSince time.Time
}

func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now}
}

func (s *Session) Snapshot() ports.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := ports.SessionSnapshot{
		TaskID:   s.taskID,
		Name:     s.name,
		IssueKey: s.issueKey,
		State:    s.state,
	}
	if s.taskID != 0 && s.state == domain.TaskStateRunning {
		snapshot.Elapsed = s.now().Sub(s.runningSince)
	}
	return snapshot
}

func (s *Session) run(task domain.Task, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taskID = task.ID
	s.name = task.Name
	s.issueKey = ""
	if task.IssueKey != nil {
		s.issueKey = *task.IssueKey
	}
	s.state = domain.TaskStateRunning
	s.runningSince = at
}

func (s *Session) pause(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taskID == id {
		s.state = domain.TaskStatePaused
	}
}

// release forgets the task if it is the current one and reports the length
// of the session that was open, if any.
func (s *Session) release(id int64, at time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taskID != id {
		return 0
	}

	var open time.Duration
	if s.state == domain.TaskStateRunning {
		open = at.Sub(s.runningSince)
	}
	s.taskID = 0
	s.name = ""
	s.issueKey = ""
	s.state = ""
	s.runningSince = time.Time{}
	return open
}
