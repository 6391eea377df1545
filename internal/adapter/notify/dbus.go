package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"timetracker/internal/core/ports"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsNotifyRPC = notificationsService + ".Notify"
)

// DBusNotifier talks to the freedesktop notification service directly, which
// is what KDE Plasma expects.
type DBusNotifier struct {
	object dbus.BusObject
}

var _ ports.Notifier = (*DBusNotifier)(nil)

func NewDBusNotifier(object dbus.BusObject) *DBusNotifier {
	return &DBusNotifier{object: object}
}

// DialSessionBus returns the notification service object on the session bus.
func DialSessionBus() (dbus.BusObject, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return conn.Object(notificationsService, notificationsPath), nil
}

func (d *DBusNotifier) Name() string { return "dbus" }

func (d *DBusNotifier) Notify(ctx context.Context, n ports.Notification) error {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(dbusUrgency(n.Priority)),
	}

	call := d.object.CallWithContext(ctx, notificationsNotifyRPC, 0,
		AppName,
		uint32(0),
		"",
		fullTitle(n.Title),
		n.Message,
		[]string{},
		hints,
		int32(n.TimeoutSeconds*1000),
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}

func dbusUrgency(priority ports.Priority) byte {
	switch priority {
	case ports.PriorityLow:
		return 0
	case ports.PriorityHigh:
		return 2
	default:
		return 1
	}
}
