package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/dto"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInputFromForm converts the web form payload, splitting the
// comma-separated tag string.
func BuildCreateTaskInputFromForm(form dto.TaskForm) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	status := domain.TaskStatusPending
	if form.Status != "" {
		status = domain.TaskStatus(form.Status)
	}

	input := domain.CreateTaskInput{
		Title:    title,
		Status:   status,
		TagNames: domain.SplitTagNames(form.TagsInput),
	}
	if form.Description != "" {
		value := form.Description
		input.Description = &value
	}

	var err error
	if input.DueDate, err = parseOptionalDate(form.DueDate); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if input.DueTime, err = parseOptionalClock(form.DueTime); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	return input, nil
}

// BuildUpdateTaskInputFromForm treats every form field as present: the edit
// page always posts the full task, so omitted values clear stored ones.
func BuildUpdateTaskInputFromForm(form dto.TaskForm) (domain.UpdateTaskInput, error) {
	create, err := BuildCreateTaskInputFromForm(form)
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	status := create.Status
	return domain.UpdateTaskInput{
		Title:          &create.Title,
		Description:    create.Description,
		DescriptionSet: true,
		Status:         &status,
		DueDate:        create.DueDate,
		DueDateSet:     true,
		DueTime:        create.DueTime,
		DueTimeSet:     true,
		TagNames:       create.TagNames,
		TagNamesSet:    true,
	}, nil
}

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	status := domain.TaskStatusPending
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Status:      status,
		TagNames:    req.TagsNames,
	}

	var err error
	if input.DueDate, err = parseOptionalDatePtr(req.DueDate); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if input.DueTime, err = parseOptionalClockPtr(req.DueTime); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	return input, nil
}

// BuildUpdateTaskInput distinguishes absent fields from explicit nulls using
// the raw message map, so PATCH semantics survive the typed binding.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &value
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.TaskStatus(*req.Status)
		input.Status = &value
	}

	input.DescriptionSet = hasJSONField(raw, "description")
	if input.DescriptionSet && !isJSONNull(raw["description"]) {
		if req.Description == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Description = req.Description
	}

	input.DueDateSet = hasJSONField(raw, "due_date")
	if input.DueDateSet && !isJSONNull(raw["due_date"]) {
		if req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &parsed
	}

	input.DueTimeSet = hasJSONField(raw, "due_time")
	if input.DueTimeSet && !isJSONNull(raw["due_time"]) {
		if req.DueTime == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := time.Parse("15:04", *req.DueTime)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueTime = &parsed
	}

	input.TagNamesSet = hasJSONField(raw, "tags_names")
	if input.TagNamesSet && !isJSONNull(raw["tags_names"]) {
		input.TagNames = req.TagsNames
	}

	return input, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalClock(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseOptionalDate(*value)
}

func parseOptionalClockPtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseOptionalClock(*value)
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "due_date") ||
		hasJSONField(raw, "due_time") ||
		hasJSONField(raw, "tags_names")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
