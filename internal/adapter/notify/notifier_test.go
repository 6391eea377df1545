package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"

	"timetracker/internal/adapter/notify"
	"timetracker/internal/core/ports"
)

type recordedCall struct {
	name string
	args []string
}

type commandRecorder struct {
	calls []recordedCall
	err   error
}

func (r *commandRecorder) run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, recordedCall{name: name, args: args})
	return r.err
}

type fakeBusObject struct {
	dbus.BusObject
	method string
	args   []interface{}
	err    error
}

func (f *fakeBusObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.method = method
	f.args = args
	return &dbus.Call{Err: f.err}
}

type failingNotifier struct{}

func (failingNotifier) Name() string { return "failing" }

func (failingNotifier) Notify(context.Context, ports.Notification) error {
	return errors.New("no display")
}

func notice(priority ports.Priority) ports.Notification {
	return ports.Notification{Title: "Timer Running", Message: "Task 'x' has been running for 00:15:00", Priority: priority, TimeoutSeconds: 10}
}

func TestNotifySendNotifier(t *testing.T) {
	recorder := &commandRecorder{}
	notifier := notify.NewNotifySendNotifier(recorder.run)

	require.NoError(t, notifier.Notify(context.Background(), notice(ports.PriorityHigh)))
	require.Len(t, recorder.calls, 1)
	require.Equal(t, "notify-send", recorder.calls[0].name)
	require.Equal(t, []string{
		"Time Tracker: Timer Running",
		"Task 'x' has been running for 00:15:00",
		"-t", "10000",
		"-u", "critical",
	}, recorder.calls[0].args)

	require.NoError(t, notifier.Notify(context.Background(), notice(ports.PriorityLow)))
	require.Equal(t, "low", recorder.calls[1].args[5])
}

func TestWindowsToastNotifier_QuotesText(t *testing.T) {
	recorder := &commandRecorder{}
	notifier := notify.NewWindowsToastNotifier(recorder.run)

	require.NoError(t, notifier.Notify(context.Background(), notice(ports.PriorityHigh)))
	require.Len(t, recorder.calls, 1)
	require.Equal(t, "powershell", recorder.calls[0].name)

	script := recorder.calls[0].args[len(recorder.calls[0].args)-1]
	require.Contains(t, script, "'Time Tracker: Timer Running'")
	require.Contains(t, script, "'Task ''x'' has been running for 00:15:00'")
	require.Contains(t, script, "AddSeconds(10)")
	require.Contains(t, script, "ToastNotificationPriority]::High")
}

func TestDBusNotifier_SendsUrgencyHint(t *testing.T) {
	object := &fakeBusObject{}
	notifier := notify.NewDBusNotifier(object)

	require.NoError(t, notifier.Notify(context.Background(), notice(ports.PriorityLow)))
	require.Equal(t, "org.freedesktop.Notifications.Notify", object.method)
	require.Len(t, object.args, 8)
	require.Equal(t, notify.AppName, object.args[0])
	require.Equal(t, "Time Tracker: Timer Running", object.args[3])
	require.Equal(t, int32(10000), object.args[7])

	hints := object.args[6].(map[string]dbus.Variant)
	require.Equal(t, byte(0), hints["urgency"].Value())

	object.err = errors.New("service unknown")
	require.Error(t, notifier.Notify(context.Background(), notice(ports.PriorityNormal)))
}

func TestFallback(t *testing.T) {
	fallback := notify.NewFallback(failingNotifier{}, notify.LogNotifier{})
	require.Equal(t, "failing", fallback.Name())
	require.NoError(t, fallback.Notify(context.Background(), notice(ports.PriorityNormal)))

	both := notify.NewFallback(failingNotifier{}, failingNotifier{})
	require.Error(t, both.Notify(context.Background(), notice(ports.PriorityNormal)))
}

func TestSelect(t *testing.T) {
	recorder := &commandRecorder{}
	dialOK := func() (dbus.BusObject, error) { return &fakeBusObject{}, nil }
	dialFail := func() (dbus.BusObject, error) { return nil, errors.New("no bus") }

	cases := []struct {
		name string
		opts notify.Options
		want string
	}{
		{name: "kde", opts: notify.Options{GOOS: "linux", Desktop: "KDE", DialDBus: dialOK}, want: "dbus"},
		{name: "kde without bus", opts: notify.Options{GOOS: "linux", Desktop: "KDE", DialDBus: dialFail}, want: "log"},
		{name: "gnome", opts: notify.Options{GOOS: "linux", Desktop: "ubuntu:GNOME", Run: recorder.run}, want: "notify-send"},
		{name: "cinnamon", opts: notify.Options{GOOS: "linux", Desktop: "X-Cinnamon", Run: recorder.run}, want: "notify-send"},
		{name: "unknown desktop", opts: notify.Options{GOOS: "linux", Desktop: "sway"}, want: "log"},
		{name: "windows", opts: notify.Options{GOOS: "windows", Run: recorder.run}, want: "windows-toast"},
		{name: "darwin", opts: notify.Options{GOOS: "darwin"}, want: "log"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, notify.Select(tc.opts).Name())
		})
	}
}
