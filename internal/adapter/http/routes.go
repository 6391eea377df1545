package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"timetracker/internal/adapter/http/handlers"
	"timetracker/internal/adapter/http/middleware"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Tasks  *handlers.TaskHandler
	Timer  *handlers.TimerHandler
	Sync   *handlers.SyncHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.GET("/timer", h.Timer.Current)
		api.POST("/timer/start", h.Timer.Start)
		api.POST("/timer/toggle", h.Timer.Toggle)
		api.GET("/catalog", h.Timer.Catalog)

		api.GET("/tasks", h.Tasks.ListTasks)
		api.PUT("/tasks", h.Tasks.SaveAll)
		api.POST("/tasks/delete", h.Tasks.DeleteTasks)
		api.POST("/tasks/recalculate", h.Tasks.RecalculateDurations)
		api.POST("/tasks/sync", h.Sync.Sync)
		api.GET("/tasks/:id", h.Tasks.GetTask)
		api.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		api.POST("/tasks/:id/pause", h.Timer.Pause)
		api.POST("/tasks/:id/resume", h.Timer.Resume)
		api.POST("/tasks/:id/stop", h.Timer.Stop)
		api.POST("/tasks/:id/recompute", h.Tasks.RecomputeDuration)
	}
}

// NewRouter builds the engine with the standard middleware chain.
func NewRouter(h Handlers, trustedProxies []string, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Metrics(), middleware.GinZapMiddleware(logger))
	RegisterRoutes(r, h)
	return r, nil
}
