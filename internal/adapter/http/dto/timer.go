package dto

type StartTimerRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	IssueKey *string `json:"issue_key" binding:"omitempty,max=64"`
	Notes    *string `json:"notes" binding:"omitempty,max=65535"`
}

type TimerStatus struct {
	Active         bool    `json:"active"`
	TaskID         *int64  `json:"task_id"`
	Name           *string `json:"name"`
	IssueKey       *string `json:"issue_key"`
	State          *string `json:"state"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	Elapsed        string  `json:"elapsed"`
}

type TransitionResponse struct {
	TaskID       int64    `json:"task_id"`
	State        string   `json:"state"`
	Duration     *float64 `json:"duration,omitempty"`
	DurationText *string  `json:"duration_text,omitempty"`
}

type Catalog struct {
	Tasks          []string `json:"tasks"`
	IssueKeyPrefix string   `json:"issue_key_prefix"`
}
