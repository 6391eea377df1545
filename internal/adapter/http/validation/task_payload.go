package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

func BuildCreateTaskInput(req dto.StartTimerRequest) (domain.CreateTaskInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{Name: name, Notes: req.Notes}
	if req.IssueKey != nil && strings.TrimSpace(*req.IssueKey) != "" {
		key := strings.TrimSpace(*req.IssueKey)
		input.IssueKey = &key
	}
	return input, nil
}

// BuildTaskUpdate maps an edit body onto the fixed update record. Only
// fields present in raw are written; unknown fields are ignored, so an
// empty or unrecognized body yields an empty update.
func BuildTaskUpdate(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskUpdate, error) {
	var update domain.TaskUpdate

	if hasJSONField(raw, "name") {
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			return domain.TaskUpdate{}, ErrInvalidTaskPayload
		}
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
	}

	if hasJSONField(raw, "duration") {
		if req.Duration == nil || *req.Duration < 0 {
			return domain.TaskUpdate{}, ErrInvalidTaskPayload
		}
		update.Duration = req.Duration
	}

	if hasJSONField(raw, "synced") {
		if req.Synced == nil {
			return domain.TaskUpdate{}, ErrInvalidTaskPayload
		}
		update.Synced = req.Synced
	}

	var err error
	if update.StartTime, update.StartTimeSet, err = optionalTimestamp(raw, "start_time", req.StartTime); err != nil {
		return domain.TaskUpdate{}, err
	}
	if update.EndTime, update.EndTimeSet, err = optionalTimestamp(raw, "end_time", req.EndTime); err != nil {
		return domain.TaskUpdate{}, err
	}

	update.IssueKey, update.IssueKeySet = optionalText(raw, "issue_key", req.IssueKey)
	update.Notes, update.NotesSet = optionalText(raw, "notes", req.Notes)
	update.WorklogID, update.WorklogIDSet = optionalText(raw, "worklog_id", req.WorklogID)

	return update, nil
}

// BuildTaskChanges decodes the save-all body: a list of edit bodies that each
// carry the task id.
func BuildTaskChanges(body []byte) ([]domain.TaskChange, error) {
	var envelope struct {
		Tasks []json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Tasks == nil {
		return nil, ErrInvalidTaskPayload
	}

	changes := make([]domain.TaskChange, 0, len(envelope.Tasks))
	for i, item := range envelope.Tasks {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: task %d", ErrInvalidTaskPayload, i)
		}

		var id int64
		if err := json.Unmarshal(raw["id"], &id); err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: task %d: missing id", ErrInvalidTaskPayload, i)
		}

		var req dto.UpdateTaskRequest
		if err := json.Unmarshal(item, &req); err != nil {
			return nil, fmt.Errorf("%w: task %d", ErrInvalidTaskPayload, i)
		}
		update, err := BuildTaskUpdate(req, raw)
		if err != nil {
			return nil, err
		}
		changes = append(changes, domain.TaskChange{ID: id, Update: update})
	}
	return changes, nil
}

func optionalTimestamp(raw map[string]json.RawMessage, field string, value *string) (*time.Time, bool, error) {
	if !hasJSONField(raw, field) {
		return nil, false, nil
	}
	if isJSONNull(raw[field]) || (value != nil && strings.TrimSpace(*value) == "") {
		return nil, true, nil
	}
	if value == nil {
		return nil, false, ErrInvalidTaskPayload
	}
	parsed, err := domain.ParseTimestamp(*value)
	if err != nil {
		return nil, false, err
	}
	return &parsed, true, nil
}

func optionalText(raw map[string]json.RawMessage, field string, value *string) (*string, bool) {
	if !hasJSONField(raw, field) {
		return nil, false
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, true
	}
	text := strings.TrimSpace(*value)
	return &text, true
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
