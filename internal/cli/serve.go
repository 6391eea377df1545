package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "timetracker/internal/adapter/http"
	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/adapter/http/handlers"
	"timetracker/internal/app/service"
	"timetracker/internal/config"
	"timetracker/internal/core/ports"
	"timetracker/pkg/translator"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions, version string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if port == "" {
				port = a.cfg.AppPort
			}
			return serve(ctx, a, version, ":"+port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default APP_PORT or 8080)")
	return cmd
}

func serve(ctx context.Context, a *app, version, addr string) error {
	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	// A nil *SyncService must reach the handler as a nil interface.
	var syncService ports.SyncService
	if svc := a.syncService(ctx); svc != nil {
		syncService = svc
	}

	router, err := httpadapter.NewRouter(httpadapter.Handlers{
		Health: handlers.NewHealthHandler(a.db, version, a.notifier, syncService != nil, a.tasks),
		Tasks:  handlers.NewTaskHandler(a.tasks),
		Timer: handlers.NewTimerHandler(a.tasks, dto.Catalog{
			Tasks:          a.settings.Tasks,
			IssueKeyPrefix: a.settings.IssueKeyPrefix,
		}),
		Sync: handlers.NewSyncHandler(syncService),
	}, a.cfg.TrustedProxies, a.logger)
	if err != nil {
		return err
	}

	reminder := service.NewReminder(a.tasks.Session(), a.notifications, reminderConfig(a.settings.Reminder))

	ctx, cancelReminder := context.WithCancel(ctx)
	defer cancelReminder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reminder.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			a.logger.Error("could not start server", zap.Error(err))
			cancelReminder()
			wg.Wait()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown error", zap.Error(err))
	}

	wg.Wait()
	return nil
}

// reminderConfig overlays the settings file on the default cadence; a
// missing interval keeps the default.
func reminderConfig(settings config.ReminderSettings) service.ReminderConfig {
	cfg := service.DefaultReminderConfig()
	cfg.IdleEnabled = settings.Enabled
	if settings.Interval > 0 {
		cfg.Interval = settings.Interval
	}
	return cfg
}
