package dto

type TaskItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	State        string  `json:"state"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Duration     float64 `json:"duration"`
	DurationText string  `json:"duration_text"`
	IssueKey     *string `json:"issue_key"`
	CreatedDate  string  `json:"created_date"`
	SyncRequired bool    `json:"sync_required"`
	Synced       bool    `json:"synced"`
	Notes        *string `json:"notes"`
	WorklogID    *string `json:"worklog_id"`
}

type DayListing struct {
	Date       string     `json:"date"`
	Tasks      []TaskItem `json:"tasks"`
	TotalHours float64    `json:"total_hours"`
	TotalText  string     `json:"total_text"`
}

// UpdateTaskRequest holds the editable columns. Fields absent from the JSON
// body are left untouched; unknown fields are ignored.
type UpdateTaskRequest struct {
	Name      *string  `json:"name"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	Duration  *float64 `json:"duration"`
	IssueKey  *string  `json:"issue_key"`
	Notes     *string  `json:"notes"`
	Synced    *bool    `json:"synced"`
	WorklogID *string  `json:"worklog_id"`
}

type IDsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,dive,gt=0"`
}

type RecomputeRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type RecalculateResponse struct {
	Tasks []TaskItem `json:"tasks"`
}
