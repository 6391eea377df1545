package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/adapter/http/mapper"
	"timetracker/internal/adapter/http/validation"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
	"timetracker/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: time.Now}
}

// ListTasks returns the tasks created on ?date= (today by default) with the
// day total.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	date := h.now()
	if value := c.Query("date"); value != "" {
		parsed, err := domain.ParseDate(value)
		if err != nil {
			respondBadRequest(c, apierrors.MsgInvalidDate)
			return
		}
		date = parsed
	}

	listing, err := h.taskService.ListForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, zap.String("date", domain.FormatDate(date)))
		return
	}

	c.JSON(http.StatusOK, mapper.ToDayListing(listing))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, zap.Int64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

// UpdateTask applies a partial edit. Unknown fields are ignored and an empty
// object changes nothing.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	var raw map[string]json.RawMessage
	var req dto.UpdateTaskRequest
	if json.Unmarshal(body, &raw) != nil || json.Unmarshal(body, &req) != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	update, err := validation.BuildTaskUpdate(req, raw)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, update)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Int64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

// SaveAll writes every edited row of the listing at once.
func (h *TaskHandler) SaveAll(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	changes, err := validation.BuildTaskChanges(body)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	if err := h.taskService.SaveAll(c.Request.Context(), changes); err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Int("count", len(changes)))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) DeleteTasks(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	if err := h.taskService.DeleteTasks(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTasks, zap.Int64s("task_ids", req.IDs))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) RecalculateDurations(c *gin.Context) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	tasks, err := h.taskService.RecalculateDurations(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err, apierrors.MsgFailRecalculate, zap.Int64s("task_ids", req.IDs))
		return
	}

	c.JSON(http.StatusOK, dto.RecalculateResponse{Tasks: mapper.ToTaskItems(tasks)})
}

// RecomputeDuration replaces the duration from a typed start/end pair.
func (h *TaskHandler) RecomputeDuration(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.RecomputeDuration(c.Request.Context(), taskID, req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, err, apierrors.MsgFailRecalculate, zap.Int64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}
