package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ReminderConfig struct {
	Interval time.Duration
	// IdleEnabled turns on the "not tracking anything" reminder.
	IdleEnabled bool
}

func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Interval:    time.Minute,
		IdleEnabled: true,
	}
}

// Reminder periodically inspects the session and nudges the user. It never
// writes task rows.
type Reminder struct {
	session       *Session
	notifications *TimerNotifications
	cfg           ReminderConfig
}

func NewReminder(session *Session, notifications *TimerNotifications, cfg ReminderConfig) *Reminder {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Reminder{session: session, notifications: notifications, cfg: cfg}
}

// Run ticks until ctx is canceled.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	zap.L().Info("reminder started", zap.Duration("interval", r.cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("reminder stopping", zap.Error(ctx.Err()))
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick runs one reminder check and reports whether a notification was sent.
func (r *Reminder) Tick(ctx context.Context) bool {
	snapshot := r.session.Snapshot()
	if snapshot.Active() {
		return r.notifications.Running(ctx, snapshot)
	}
	if !r.cfg.IdleEnabled {
		return false
	}
	return r.notifications.Idle(ctx)
}
