package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

type NotificationPolicy struct {
	Enabled             bool
	PeriodicInterval    time.Duration
	LongRunningAfter    time.Duration
	LongRunningInterval time.Duration
	CompletionThreshold time.Duration
	TimeoutSeconds      int
}

func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		Enabled:             true,
		PeriodicInterval:    15 * time.Minute,
		LongRunningAfter:    time.Hour,
		LongRunningInterval: 30 * time.Minute,
		CompletionThreshold: time.Minute,
		TimeoutSeconds:      10,
	}
}

// TimerNotifications turns timer milestones into desktop notifications.
// Running-timer notices are throttled per task and per cadence.
type TimerNotifications struct {
	notifier ports.Notifier
	policy   NotificationPolicy

	mu       sync.Mutex
	lastSent map[string]time.Duration
}

func NewTimerNotifications(notifier ports.Notifier, policy NotificationPolicy) *TimerNotifications {
	if policy.PeriodicInterval <= 0 {
		policy.PeriodicInterval = 15 * time.Minute
	}
	if policy.LongRunningAfter <= 0 {
		policy.LongRunningAfter = time.Hour
	}
	if policy.LongRunningInterval <= 0 {
		policy.LongRunningInterval = 30 * time.Minute
	}
	if policy.TimeoutSeconds <= 0 {
		policy.TimeoutSeconds = 10
	}
	return &TimerNotifications{
		notifier: notifier,
		policy:   policy,
		lastSent: map[string]time.Duration{},
	}
}

// Running announces a running timer at the policy cadence. It returns true
// when a notification was sent.
func (n *TimerNotifications) Running(ctx context.Context, snapshot ports.SessionSnapshot) bool {
	if n == nil || !n.policy.Enabled || !snapshot.Active() {
		return false
	}

	elapsed := snapshot.Elapsed
	identifier := taskIdentifier(snapshot.Name, snapshot.IssueKey)
	message := fmt.Sprintf("Task '%s' has been running for %s", identifier, domain.FormatClock(elapsed))

	var (
		key      string
		interval time.Duration
		notice   ports.Notification
	)
	if elapsed >= n.policy.LongRunningAfter {
		key = fmt.Sprintf("long:%d", snapshot.TaskID)
		interval = n.policy.LongRunningInterval
		notice = ports.Notification{Title: "Timer Running for a Long Time", Message: message, Priority: ports.PriorityHigh}
	} else {
		key = fmt.Sprintf("periodic:%d", snapshot.TaskID)
		interval = n.policy.PeriodicInterval
		notice = ports.Notification{Title: "Timer Running", Message: message, Priority: ports.PriorityLow}
	}

	n.mu.Lock()
	last, seen := n.lastSent[key]
	if seen && elapsed < last {
		// a new session of the same task restarted the clock
		last = 0
	}
	due := elapsed-last >= interval
	if due {
		n.lastSent[key] = elapsed
	}
	n.mu.Unlock()

	if !due {
		return false
	}

	n.send(ctx, "running", notice)
	return true
}

// Completed reports a finished timer when it tracked more than the
// completion threshold.
func (n *TimerNotifications) Completed(ctx context.Context, name, issueKey string, elapsed time.Duration) bool {
	if n == nil || !n.policy.Enabled || elapsed <= n.policy.CompletionThreshold {
		return false
	}

	n.send(ctx, "completed", ports.Notification{
		Title:    "Timer Completed",
		Message:  fmt.Sprintf("You spent %s on '%s'", domain.HumanizeElapsed(elapsed), taskIdentifier(name, issueKey)),
		Priority: ports.PriorityNormal,
	})
	return true
}

func (n *TimerNotifications) Idle(ctx context.Context) bool {
	if n == nil || !n.policy.Enabled {
		return false
	}

	n.send(ctx, "idle", ports.Notification{
		Title:    "Time Tracking Reminder",
		Message:  "You're not tracking any activity. Don't forget to log your time!",
		Priority: ports.PriorityHigh,
	})
	return true
}

func (n *TimerNotifications) send(ctx context.Context, kind string, notice ports.Notification) {
	if n.notifier == nil {
		return
	}
	if notice.TimeoutSeconds == 0 {
		notice.TimeoutSeconds = n.policy.TimeoutSeconds
	}

	if err := n.notifier.Notify(ctx, notice); err != nil {
		notificationsTotal.WithLabelValues(kind, "error").Inc()
		zap.L().Warn("failed to send notification",
			zap.String("notifier", n.notifier.Name()),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return
	}
	notificationsTotal.WithLabelValues(kind, "ok").Inc()
}

func taskIdentifier(name, issueKey string) string {
	if issueKey == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, issueKey)
}
