package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"timetracker/internal/core/ports"
)

// NotifySendNotifier shells out to notify-send (GNOME, Unity, Cinnamon).
type NotifySendNotifier struct {
	run CommandRunner
}

var _ ports.Notifier = (*NotifySendNotifier)(nil)

func NewNotifySendNotifier(run CommandRunner) *NotifySendNotifier {
	if run == nil {
		run = execCommand
	}
	return &NotifySendNotifier{run: run}
}

func (s *NotifySendNotifier) Name() string { return "notify-send" }

func (s *NotifySendNotifier) Notify(ctx context.Context, n ports.Notification) error {
	return s.run(ctx, "notify-send",
		fullTitle(n.Title),
		n.Message,
		"-t", strconv.Itoa(n.TimeoutSeconds*1000),
		"-u", notifySendUrgency(n.Priority),
	)
}

func notifySendUrgency(priority ports.Priority) string {
	switch priority {
	case ports.PriorityLow:
		return "low"
	case ports.PriorityHigh:
		return "critical"
	default:
		return "normal"
	}
}

// WindowsToastNotifier raises a toast through the WinRT API from PowerShell.
type WindowsToastNotifier struct {
	run CommandRunner
}

var _ ports.Notifier = (*WindowsToastNotifier)(nil)

func NewWindowsToastNotifier(run CommandRunner) *WindowsToastNotifier {
	if run == nil {
		run = execCommand
	}
	return &WindowsToastNotifier{run: run}
}

func (w *WindowsToastNotifier) Name() string { return "windows-toast" }

func (w *WindowsToastNotifier) Notify(ctx context.Context, n ports.Notification) error {
	return w.run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", toastScript(n))
}

const toastTemplate = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode(%s)) > $null
$text.Item(1).AppendChild($template.CreateTextNode(%s)) > $null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
$toast.ExpirationTime = [DateTimeOffset]::Now.AddSeconds(%d)
%s
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast)`

func toastScript(n ports.Notification) string {
	priority := ""
	if n.Priority == ports.PriorityHigh {
		priority = "$toast.Priority = [Windows.UI.Notifications.ToastNotificationPriority]::High"
	}
	timeout := n.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return fmt.Sprintf(toastTemplate,
		powershellQuote(fullTitle(n.Title)),
		powershellQuote(n.Message),
		timeout,
		priority,
		powershellQuote(AppName),
	)
}

// powershellQuote renders value as a single-quoted PowerShell literal.
func powershellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
