package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"timetracker/internal/adapter/http/middleware"
	"timetracker/internal/core/ports"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	AppName         = "timetracker"
	healthDBTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Database       string `json:"database"`
	DatabaseDriver string `json:"database_driver"`
	Notifier       string `json:"notifier"`
	WorklogSync    string `json:"worklog_sync"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	TimerActive       bool           `json:"timer_active"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	db          *sqlx.DB
	version     string
	notifier    ports.Notifier
	syncEnabled bool
	taskService ports.TaskService
}

func NewHealthHandler(db *sqlx.DB, version string, notifier ports.Notifier, syncEnabled bool, taskService ports.TaskService) *HealthHandler {
	if version == "" {
		version = "dev"
	}
	return &HealthHandler{
		db:          db,
		version:     version,
		notifier:    notifier,
		syncEnabled: syncEnabled,
		taskService: taskService,
	}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	if !h.checkConnectionToDatabase(c.Request.Context()) {
		statusCode = http.StatusInternalServerError
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           AppName,
		AppVersion:        h.version,
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	databaseStatus := StatusDown
	if h.checkConnectionToDatabase(c.Request.Context()) {
		databaseStatus = StatusOk
	}

	services := HealthServices{
		Database:    databaseStatus,
		Notifier:    "none",
		WorklogSync: "disabled",
	}
	if h.db != nil {
		services.DatabaseDriver = h.db.DriverName()
	}
	if h.notifier != nil {
		services.Notifier = h.notifier.Name()
	}
	if h.syncEnabled {
		services.WorklogSync = "enabled"
	}

	report := HealthAdvanced{
		AppName:           AppName,
		AppVersion:        h.version,
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status:            services,
	}
	if h.taskService != nil {
		report.TimerActive = h.taskService.Current().Active()
	}

	c.JSON(http.StatusOK, report)
}

func (h *HealthHandler) checkConnectionToDatabase(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	// Avoid hanging health checks if the database stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.db.PingContext(timeoutCtx) == nil
}
