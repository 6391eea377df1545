package mapper

import (
	"strconv"
	"time"

	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:           task.ID,
		Name:         task.Name,
		State:        string(task.State),
		Duration:     task.Duration,
		DurationText: domain.FormatDuration(task.Duration),
		CreatedDate:  task.CreatedDate.Format(time.RFC3339),
		SyncRequired: task.SyncRequired,
		Synced:       task.Synced,
		IssueKey:     copyString(task.IssueKey),
		Notes:        copyString(task.Notes),
		WorklogID:    copyString(task.WorklogID),
	}

	if task.StartTime != nil {
		value := task.StartTime.Format(time.RFC3339)
		item.StartTime = &value
	}

	if task.EndTime != nil {
		value := task.EndTime.Format(time.RFC3339)
		item.EndTime = &value
	}

	return item
}

func ToDayListing(listing domain.DayListing) dto.DayListing {
	return dto.DayListing{
		Date:       domain.FormatDate(listing.Date),
		Tasks:      ToTaskItems(listing.Tasks),
		TotalHours: listing.TotalHours,
		TotalText:  domain.FormatDuration(listing.TotalHours),
	}
}

func ToTimerStatus(snapshot ports.SessionSnapshot) dto.TimerStatus {
	status := dto.TimerStatus{
		Active:         snapshot.Active(),
		ElapsedSeconds: int64(snapshot.Elapsed / time.Second),
		Elapsed:        domain.FormatClock(snapshot.Elapsed),
	}
	if snapshot.TaskID == 0 {
		return status
	}

	id := snapshot.TaskID
	name := snapshot.Name
	state := string(snapshot.State)
	status.TaskID = &id
	status.Name = &name
	status.State = &state
	if snapshot.IssueKey != "" {
		key := snapshot.IssueKey
		status.IssueKey = &key
	}
	return status
}

func ToTransition(id int64, state domain.TaskState, duration *float64) dto.TransitionResponse {
	resp := dto.TransitionResponse{TaskID: id, State: string(state)}
	if duration != nil {
		value := *duration
		text := domain.FormatDuration(value)
		resp.Duration = &value
		resp.DurationText = &text
	}
	return resp
}

func ToSyncResults(results []ports.SyncResult) dto.SyncResponse {
	items := make([]dto.SyncResultItem, 0, len(results))
	for _, result := range results {
		item := dto.SyncResultItem{
			TaskID:  result.TaskID,
			Outcome: string(result.Outcome),
		}
		if result.IssueKey != "" {
			key := result.IssueKey
			item.IssueKey = &key
		}
		if result.WorklogID != "" {
			id := result.WorklogID
			item.WorklogID = &id
		}
		if result.Err != nil {
			message := result.Err.Error()
			item.Error = &message
		}
		items = append(items, item)
	}
	return dto.SyncResponse{Results: items}
}

// IssueKeysByTask converts the JSON map of task id to issue key.
func IssueKeysByTask(raw map[string]string) (map[int64]string, bool) {
	keys := make(map[int64]string, len(raw))
	for id, key := range raw {
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, false
		}
		keys[parsed] = key
	}
	return keys, true
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
