package dto

type SyncRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,dive,gt=0"`
	// IssueKeys answers the issue key prompt for tasks that have none, keyed
	// by task id.
	IssueKeys map[string]string `json:"issue_keys"`
}

type SyncResultItem struct {
	TaskID    int64   `json:"task_id"`
	IssueKey  *string `json:"issue_key"`
	Outcome   string  `json:"outcome"`
	WorklogID *string `json:"worklog_id"`
	Error     *string `json:"error,omitempty"`
}

type SyncResponse struct {
	Results []SyncResultItem `json:"results"`
}
