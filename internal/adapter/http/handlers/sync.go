package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/adapter/http/mapper"
	"timetracker/internal/adapter/http/middleware"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
	"timetracker/pkg/apierrors"
)

type SyncHandler struct {
	syncService ports.SyncService
}

// NewSyncHandler accepts a nil service when no Jira credentials are
// configured; Sync then answers 503.
func NewSyncHandler(syncService ports.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// issueKeyAnswers answers the issue key prompt from the request body.
type issueKeyAnswers map[int64]string

func (a issueKeyAnswers) PromptIssueKey(_ context.Context, task domain.Task) (string, error) {
	return a[task.ID], nil
}

func (h *SyncHandler) Sync(c *gin.Context) {
	if h.syncService == nil {
		c.JSON(
			http.StatusServiceUnavailable,
			apierrors.CreateError(http.StatusServiceUnavailable, apierrors.MsgSyncUnavailable, middleware.GetLang(c)),
		)
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	answers, ok := mapper.IssueKeysByTask(req.IssueKeys)
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	results, err := h.syncService.Sync(c.Request.Context(), req.IDs, issueKeyAnswers(answers))
	if err != nil {
		respondError(c, err, apierrors.MsgSyncFailed, zap.Int64s("task_ids", req.IDs))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSyncResults(results))
}
