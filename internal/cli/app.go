package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "timetracker/internal/adapter/db"
	"timetracker/internal/adapter/jira"
	"timetracker/internal/adapter/notify"
	"timetracker/internal/app/service"
	"timetracker/internal/config"
	"timetracker/internal/core/ports"
	"timetracker/internal/logging"
)

// app holds the wiring shared by every command. Each CLI invocation is its
// own process, so the timer session is rebuilt from the database on open.
type app struct {
	cfg           *config.Config
	settings      *config.Settings
	logger        *zap.Logger
	db            *sqlx.DB
	notifier      ports.Notifier
	notifications *service.TimerNotifications
	tasks         *service.TaskService
}

// notifierSelector is swapped in tests to keep desktop channels out.
var notifierSelector = func() ports.Notifier {
	return notify.Select(notify.DefaultOptions())
}

func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg := config.LoadConfig()
	if opts.envFile != "" {
		cfg = config.LoadConfigFile(opts.envFile)
	}
	if opts.settingsFile != "" {
		cfg.SettingsFile = opts.settingsFile
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Level: level, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	settings, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		logger.Warn("falling back to default settings", zap.Error(err))
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	notifier := notifierSelector()
	notifications := service.NewTimerNotifications(notifier, notificationPolicy(settings))
	tasks := service.NewTaskService(
		dbadapter.NewTaskRepository(db),
		service.WithNotifications(notifications),
		service.WithIssueKeyPrefix(settings.IssueKeyPrefix),
	)
	if err := tasks.RestoreSession(ctx); err != nil {
		_ = db.Close()
		_ = logger.Sync()
		return nil, err
	}

	return &app{
		cfg:           cfg,
		settings:      settings,
		logger:        logger,
		db:            db,
		notifier:      notifier,
		notifications: notifications,
		tasks:         tasks,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	// Syncing stderr fails on some terminals; nothing to do about it.
	_ = a.logger.Sync()
}

// syncService returns nil when no usable Jira credentials are configured.
func (a *app) syncService(ctx context.Context) *service.SyncService {
	if !a.cfg.Jira.Complete() {
		return nil
	}

	client, err := jira.NewClient(ctx, a.cfg.Jira)
	if err != nil {
		a.logger.Warn("jira client unavailable", zap.Error(err))
		return nil
	}
	return service.NewSyncService(dbadapter.NewTaskRepository(a.db), client, a.settings.IssueKeyPrefix)
}

func notificationPolicy(settings *config.Settings) service.NotificationPolicy {
	return service.NotificationPolicy{
		Enabled:             settings.Notifications.Enabled,
		PeriodicInterval:    settings.Notifications.PeriodicInterval,
		LongRunningAfter:    settings.Notifications.LongRunningAfter,
		LongRunningInterval: settings.Notifications.LongRunningInterval,
		CompletionThreshold: settings.Notifications.CompletionThreshold,
		TimeoutSeconds:      settings.Notifications.TimeoutSeconds,
	}
}

// runWithApp opens the application for one command and closes it after.
func runWithApp(cmd *cobra.Command, opts *rootOptions, run func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	return run(ctx, a)
}
