package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/adapter/http/mapper"
	"timetracker/internal/adapter/http/validation"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
	"timetracker/pkg/apierrors"
)

type TimerHandler struct {
	taskService ports.TaskService
	catalog     dto.Catalog
}

func NewTimerHandler(taskService ports.TaskService, catalog dto.Catalog) *TimerHandler {
	if catalog.Tasks == nil {
		catalog.Tasks = []string{}
	}
	return &TimerHandler{taskService: taskService, catalog: catalog}
}

func (h *TimerHandler) Start(c *gin.Context) {
	h.start(c, h.taskService.Start)
}

// Toggle resumes the paused current task or starts a new one.
func (h *TimerHandler) Toggle(c *gin.Context) {
	h.start(c, h.taskService.Toggle)
}

func (h *TimerHandler) start(c *gin.Context, run func(ctx context.Context, input domain.CreateTaskInput) (int64, error)) {
	var req dto.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	taskID, err := run(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailStartTimer, zap.String("name", input.Name))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTransition(taskID, domain.TaskStateRunning, nil))
}

func (h *TimerHandler) Pause(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	duration, err := h.taskService.Pause(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailTransition, zap.Int64("task_id", taskID), zap.String("operation", "pause"))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTransition(taskID, domain.TaskStatePaused, &duration))
}

func (h *TimerHandler) Resume(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.Resume(c.Request.Context(), taskID); err != nil {
		respondError(c, err, apierrors.MsgFailTransition, zap.Int64("task_id", taskID), zap.String("operation", "resume"))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTransition(taskID, domain.TaskStateRunning, nil))
}

func (h *TimerHandler) Stop(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	duration, err := h.taskService.Stop(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailTransition, zap.Int64("task_id", taskID), zap.String("operation", "stop"))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTransition(taskID, domain.TaskStateStopped, &duration))
}

func (h *TimerHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToTimerStatus(h.taskService.Current()))
}

// Catalog lists the predefined task names offered by the timer.
func (h *TimerHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog)
}
