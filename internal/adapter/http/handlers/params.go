package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"timetracker/pkg/apierrors"
)

// taskIDParam reads the :id path parameter and answers 400 when it is not a
// positive integer.
func taskIDParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || taskID <= 0 {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return 0, false
	}
	return taskID, true
}
