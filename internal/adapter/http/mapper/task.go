package mapper

import (
	"time"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/dto"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task, today time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task, today))
	}
	return items
}

func ToTaskItem(task domain.Task, today time.Time) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Status:      string(task.Status),
		StatusLabel: task.Status.Label(),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		Highlight:   string(task.HighlightFor(today)),
		Tags:        make([]uint64, 0, len(task.Tags)),
		TagNames:    make([]string, 0, len(task.Tags)),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}
	if task.DueDate != nil {
		value := task.DueDate.Format("2006-01-02")
		item.DueDate = &value
	}
	if task.DueTime != nil {
		value := task.DueTime.Format("15:04")
		item.DueTime = &value
	}
	for _, tag := range task.Tags {
		item.Tags = append(item.Tags, tag.ID)
		item.TagNames = append(item.TagNames, tag.Name)
	}
	return item
}
