package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"timetracker/internal/core/ports"
)

// AppName prefixes every notification title.
const AppName = "Time Tracker"

// CommandRunner runs an external program to completion.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func execCommand(ctx context.Context, name string, args ...string) error {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if text := strings.TrimSpace(string(output)); text != "" {
			return fmt.Errorf("%s: %w: %s", name, err, text)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func fullTitle(title string) string {
	return AppName + ": " + title
}

// LogNotifier writes notifications to the application log. It is the last
// resort when no desktop channel works.
type LogNotifier struct{}

var _ ports.Notifier = LogNotifier{}

func (LogNotifier) Name() string { return "log" }

func (LogNotifier) Notify(_ context.Context, n ports.Notification) error {
	zap.L().Info("notification",
		zap.String("title", fullTitle(n.Title)),
		zap.String("message", n.Message),
		zap.String("priority", string(n.Priority)),
	)
	return nil
}

// Fallback sends through primary and, when that fails, through secondary.
type Fallback struct {
	primary   ports.Notifier
	secondary ports.Notifier
}

var _ ports.Notifier = (*Fallback)(nil)

func NewFallback(primary, secondary ports.Notifier) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

func (f *Fallback) Name() string {
	return f.primary.Name()
}

func (f *Fallback) Notify(ctx context.Context, n ports.Notification) error {
	err := f.primary.Notify(ctx, n)
	if err == nil {
		return nil
	}

	zap.L().Warn("desktop notification failed, falling back",
		zap.String("notifier", f.primary.Name()),
		zap.String("fallback", f.secondary.Name()),
		zap.Error(err),
	)
	if fallbackErr := f.secondary.Notify(ctx, n); fallbackErr != nil {
		return errors.Join(err, fallbackErr)
	}
	return nil
}
