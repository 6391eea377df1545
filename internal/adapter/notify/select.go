package notify

import (
	"os"
	"runtime"
	"strings"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"timetracker/internal/core/ports"
)

type Options struct {
	GOOS string
	// Desktop is the value of XDG_CURRENT_DESKTOP, e.g. "ubuntu:GNOME".
	Desktop  string
	DialDBus func() (dbus.BusObject, error)
	Run      CommandRunner
}

// DefaultOptions describes the running host.
func DefaultOptions() Options {
	return Options{
		GOOS:     runtime.GOOS,
		Desktop:  os.Getenv("XDG_CURRENT_DESKTOP"),
		DialDBus: DialSessionBus,
		Run:      execCommand,
	}
}

// Select picks the notifier for the host once, at startup. Every desktop
// variant falls back to the log when a delivery fails.
func Select(opts Options) ports.Notifier {
	primary := selectDesktop(opts)
	if primary == nil {
		zap.L().Info("no desktop notifier for host, notifications go to the log",
			zap.String("goos", opts.GOOS), zap.String("desktop", opts.Desktop))
		return LogNotifier{}
	}

	zap.L().Info("selected desktop notifier", zap.String("notifier", primary.Name()))
	return NewFallback(primary, LogNotifier{})
}

func selectDesktop(opts Options) ports.Notifier {
	switch opts.GOOS {
	case "windows":
		return NewWindowsToastNotifier(opts.Run)
	case "linux", "freebsd", "openbsd", "netbsd":
	default:
		return nil
	}

	for _, desktop := range strings.Split(strings.ToUpper(opts.Desktop), ":") {
		switch strings.TrimSpace(desktop) {
		case "KDE":
			if opts.DialDBus == nil {
				return nil
			}
			object, err := opts.DialDBus()
			if err != nil {
				zap.L().Warn("dbus unavailable", zap.Error(err))
				return nil
			}
			return NewDBusNotifier(object)
		case "GNOME", "UNITY", "X-CINNAMON":
			return NewNotifySendNotifier(opts.Run)
		}
	}
	return nil
}
