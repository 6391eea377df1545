package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timetracker/internal/adapter/http/middleware"
	"timetracker/internal/adapter/http/validation"
	"timetracker/internal/core/domain"
	"timetracker/pkg/apierrors"
)

type errorMapping struct {
	target error
	status int
	msgKey string
}

// Specific state errors come before ErrInvalidState, and ErrTaskNotFound
// before ErrStorage since an update of a missing row matches both.
var errorMappings = []errorMapping{
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrTaskNotStarted, http.StatusConflict, apierrors.MsgTaskNotStarted},
	{domain.ErrTaskNotRunning, http.StatusConflict, apierrors.MsgTaskNotRunning},
	{domain.ErrTaskRunning, http.StatusConflict, apierrors.MsgTaskRunning},
	{domain.ErrTaskStopped, http.StatusConflict, apierrors.MsgTaskStopped},
	{domain.ErrTimerActive, http.StatusConflict, apierrors.MsgTimerActive},
	{domain.ErrInvalidState, http.StatusConflict, apierrors.MsgInvalidState},
	{domain.ErrInvalidTimestamp, http.StatusBadRequest, apierrors.MsgInvalidTimestamp},
	{domain.ErrInvalidTask, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
	{validation.ErrInvalidTaskPayload, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
	{domain.ErrIssueKeyRequired, http.StatusBadRequest, apierrors.MsgIssueKeyRequired},
	{domain.ErrSyncFailed, http.StatusBadGateway, apierrors.MsgSyncFailed},
}

// respondError writes the API error matching err. Unrecognized errors become
// a 500 with fallbackKey.
func respondError(c *gin.Context, err error, fallbackKey string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			c.JSON(mapping.status, apierrors.CreateError(mapping.status, mapping.msgKey, lang))
			return
		}
	}

	zap.L().Error("request failed", append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))...)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
	)
}

func respondBadRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}
