package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTimestamp   = "invalidTimestamp"
	MsgInvalidDate        = "invalidDate"
	MsgTaskNotFound       = "taskNotFound"
	MsgInvalidState       = "invalidTaskState"
	MsgTaskNotStarted     = "taskNotStarted"
	MsgTaskNotRunning     = "taskNotRunning"
	MsgTaskRunning        = "taskRunning"
	MsgTaskStopped        = "taskStopped"
	MsgTimerActive        = "timerActive"
	MsgIssueKeyRequired   = "issueKeyRequired"
	MsgSyncFailed         = "syncFailed"
	MsgSyncUnavailable    = "syncUnavailable"
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailStartTimer     = "failStartTimer"
	MsgFailTransition     = "failTransition"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTasks    = "failDeleteTasks"
	MsgFailRecalculate    = "failRecalculate"
)
