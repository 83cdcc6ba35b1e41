package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable form shown by UI status toggles.
func (s TaskStatus) Label() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "In progress"
	case TaskStatusCompleted:
		return "Completed"
	}
	return string(s)
}

// Highlight is the UI emphasis class derived from status and due date.
type Highlight string

const (
	HighlightMuted   Highlight = "muted"
	HighlightDanger  Highlight = "danger"
	HighlightWarning Highlight = "warning"
	HighlightNeutral Highlight = "neutral"
)

type Task struct {
	ID          uint64
	UserID      uint64
	Title       string
	Description *string
	Status      TaskStatus
	DueDate     *time.Time
	DueTime     *time.Time
	CreatedAt   time.Time
	Tags        []Tag
}

// HighlightFor classifies the task against the given local date: completed
// tasks are muted, overdue ones danger, same-day warning, the rest neutral.
func (t Task) HighlightFor(today time.Time) Highlight {
	if t.Status == TaskStatusCompleted {
		return HighlightMuted
	}
	if t.DueDate == nil {
		return HighlightNeutral
	}
	due := TruncateToDay(*t.DueDate)
	day := TruncateToDay(today)
	switch {
	case due.Before(day):
		return HighlightDanger
	case due.Equal(day):
		return HighlightWarning
	}
	return HighlightNeutral
}

// TruncateToDay drops the clock portion, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	DueDate     *time.Time
	DueTime     *time.Time
	TagNames    []string
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	// DescriptionSet distinguishes "clear description" from "leave untouched".
	DescriptionSet bool
	Status         *TaskStatus
	DueDate        *time.Time
	DueDateSet     bool
	DueTime        *time.Time
	DueTimeSet     bool
	TagNames       []string
	TagNamesSet    bool
}

type TaskFilter struct {
	Status *TaskStatus
	// Query matches case-insensitively against title or tag name.
	Query string
}
